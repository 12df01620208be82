package domain

import "time"

// ContentType is the sniffed media type of an uploaded document
type ContentType string

const (
	ContentTypePDF  ContentType = "application/pdf"
	ContentTypeText ContentType = "text/plain"
)

// ExtractionStatus represents the processing state of an extraction job
type ExtractionStatus string

const (
	StatusPending    ExtractionStatus = "pending"
	StatusProcessing ExtractionStatus = "processing"
	StatusCompleted  ExtractionStatus = "completed"
	StatusFailed     ExtractionStatus = "failed"
)

// Document is the text layer of an upload
type Document struct {
	Text        string
	PageCount   int
	ContentType ContentType
	Warnings    []string
}

// Resume is the structured record returned by the parse endpoints
type Resume struct {
	Name             *string          `json:"name"`
	Email            []string         `json:"email"`
	PhoneNumber      *string          `json:"phone_number"`
	PhoneE164        *string          `json:"phone_e164"`
	SocialLinks      SocialLinks      `json:"social_links"`
	Skills           []string         `json:"skills"`
	EducationDetails EducationDetails `json:"education_details"`
	Address          Address          `json:"address"`
	Languages        []string         `json:"languages"`
	Experience       *string          `json:"experience"`
	RawData          *string          `json:"raw_data,omitempty"`
}

type SocialLinks struct {
	LinkedIn string   `json:"linkedIn"`
	GitHub   string   `json:"github"`
	Others   []string `json:"others"`
}

type EducationDetails struct {
	Courses         []string `json:"courses"`
	Specializations []string `json:"specializations"`
	College         []string `json:"college"`
}

type Address struct {
	Location   *Location `json:"location"`
	ZipCode    []string  `json:"zip_code"`
	Candidates []string  `json:"candidates"`
}

// Location is the geographic part of an address. Street level fields are
// never filled; they are kept so clients see a stable shape.
type Location struct {
	Formatted       *string `json:"formatted"`
	StreetNumber    *string `json:"streetNumber"`
	Street          *string `json:"street"`
	ApartmentNumber *string `json:"apartmentNumber"`
	City            *string `json:"city"`
	PostalCode      *string `json:"postalCode"`
	State           *string `json:"state"`
	Country         *string `json:"country"`
}

// LegacyResume is the record returned by POST /parse_resume
type LegacyResume struct {
	Name       *string          `json:"name"`
	Email      []string         `json:"email"`
	Phone      *string          `json:"phone"`
	Skills     []string         `json:"skills"`
	Education  []EducationEntry `json:"education"`
	Experience *string          `json:"experience"`
}

// EducationEntry is a degree keyword with the year found near it
type EducationEntry struct {
	Degree string `json:"degree"`
	Year   string `json:"year,omitempty"`
}

// ExtractionJob represents an asynchronous parse
type ExtractionJob struct {
	JobID     string           `json:"job_id"`
	Status    ExtractionStatus `json:"status"`
	Result    *Resume          `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Upload is a file received by the HTTP layer or the CLI
type Upload struct {
	Filename string
	Data     []byte
}

// FieldsExtracted lists the names of the non-empty fields, for logs and events
func (r *Resume) FieldsExtracted() []string {
	var fields []string
	add := func(name string, ok bool) {
		if ok {
			fields = append(fields, name)
		}
	}

	add("name", r.Name != nil)
	add("email", len(r.Email) > 0)
	add("phone_number", r.PhoneNumber != nil)
	add("linkedin", r.SocialLinks.LinkedIn != "")
	add("github", r.SocialLinks.GitHub != "")
	add("urls", len(r.SocialLinks.Others) > 0)
	add("skills", len(r.Skills) > 0)
	add("courses", len(r.EducationDetails.Courses) > 0)
	add("specializations", len(r.EducationDetails.Specializations) > 0)
	add("college", len(r.EducationDetails.College) > 0)
	add("location", r.Address.Location != nil)
	add("zip_code", len(r.Address.ZipCode) > 0)
	add("languages", len(r.Languages) > 0)
	add("experience", r.Experience != nil)

	return fields
}
