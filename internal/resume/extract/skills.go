package extract

import (
	"strings"
	"unicode"
)

var skillVocabulary = toSet([]string{
	// languages
	"python", "java", "javascript", "typescript", "c++", "c#", "c", "php", "ruby", "go", "rust", "swift", "kotlin",
	"scala", "r", "matlab", "sql", "html", "css", "xml", "json", "yaml", "shell", "bash", "powershell",

	// frameworks and libraries
	"react", "vue.js", "angular", "node.js", "express", "django", "flask", "spring", "laravel", "rails",
	"jquery", "bootstrap", "tailwind css", "sass", "less", "webpack", "babel", "electron", "react native",
	"flutter", "dart", "xamarin", "ionic", "cordova", "phonegap", "unity", "unreal engine",

	// databases
	"mysql", "postgresql", "mongodb", "redis", "cassandra", "dynamodb", "oracle", "sql server", "sqlite",
	"elasticsearch", "neo4j", "couchdb", "firebase", "mariadb", "nosql", "database management",

	// cloud and devops
	"aws", "azure", "google cloud", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ansible",
	"puppet", "chef", "vagrant", "git", "github", "gitlab", "bitbucket", "ci/cd", "devops", "linux",
	"ubuntu", "centos", "redhat", "debian", "nginx", "apache", "tomcat", "microservices", "serverless",

	// data science and ml
	"machine learning", "deep learning", "neural networks", "convolutional neural networks", "cnn",
	"recurrent neural networks", "rnn", "natural language processing", "nlp", "computer vision",
	"image processing", "object detection", "object recognition", "tensorflow", "pytorch", "scikit-learn",
	"pandas", "numpy", "matplotlib", "seaborn", "plotly", "jupyter", "anaconda", "tableau", "power bi",
	"data analysis", "data visualization", "statistics", "statistical analysis", "regression", "clustering",
	"classification", "recommendation systems", "time series analysis", "big data", "hadoop", "spark", "kafka",

	// mobile
	"ios", "android", "mobile development", "app development", "objective-c",

	// web
	"web development", "frontend", "backend", "full stack", "responsive design", "ui/ux", "figma",
	"sketch", "adobe xd", "photoshop", "illustrator", "wireframing", "prototyping",

	// project management and soft skills
	"project management", "agile", "scrum", "kanban", "waterfall", "jira", "trello", "asana",
	"confluence", "slack", "teams", "zoom", "leadership", "team management", "communication",
	"problem-solving", "critical thinking", "creativity", "analytical thinking",

	// security
	"cybersecurity", "information security", "network security", "encryption", "authentication",
	"authorization", "penetration testing", "vulnerability assessment", "security auditing",

	// quality assurance
	"testing", "unit testing", "integration testing", "automated testing", "selenium", "cypress",
	"jest", "mocha", "chai", "junit", "testng", "quality assurance", "qa", "bug tracking",

	// office tools
	"excel", "word", "powerpoint", "outlook", "google docs", "google sheets", "google slides",
	"office 365", "sharepoint", "onenote", "visio", "project",
})

// Skills matches unigrams, bigrams and trigrams of the stop-word-free token
// stream against the skill vocabulary. Results are title-cased and sorted.
func Skills(text string) []string {
	var tokens []string
	for _, tok := range tokenize(strings.ToLower(text)) {
		if !stopWords[tok] {
			tokens = append(tokens, tok)
		}
	}

	found := make([]string, 0)
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+n], " ")
			if skillVocabulary[gram] {
				found = append(found, titleCase(gram))
			}
		}
	}

	return uniqueSorted(found)
}

// tokenize splits on whitespace and list punctuation, then trims sentence
// punctuation from token edges. Inner dots, slashes, plus and hash signs
// survive so "node.js", "ci/cd", "c++" and "c#" stay whole.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;|()[]{}\"•·", r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".:!?'`*")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest: "node.js" becomes "Node.Js", "ci/cd" becomes "Ci/Cd".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
