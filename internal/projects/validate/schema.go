package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

// Input is the form-facing shape: everything arrives as strings, with tags
// and imageUrls as comma-separated lists.
type Input struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Tags          string `json:"tags"`
	ImageURLs     string `json:"imageUrls"`
	LiveDemoURL   string `json:"liveDemoUrl"`
	SourceCodeURL string `json:"sourceCodeUrl"`
}

// payload mirrors domain.ProjectData with the constraints the store boundary
// re-checks. Validating the shaped record again guards against callers that
// bypass ParseInput.
type payload struct {
	Title         string   `json:"title" validate:"required,min=3,max=100"`
	Description   string   `json:"description" validate:"required,min=10,max=1000"`
	Tags          []string `json:"tags" validate:"required,min=1,dive,required"`
	ImageURLs     []string `json:"imageUrls" validate:"omitempty,dive,url"`
	LiveDemoURL   string   `json:"liveDemoUrl" validate:"omitempty,url"`
	SourceCodeURL string   `json:"sourceCodeUrl" validate:"omitempty,url"`
}

// Error is a structured validation failure: per-field messages keyed by the
// JSON field name. It is always returned, never panicked, so callers can
// render inline errors.
type Error struct {
	Issues map[string][]string
}

func (e *Error) Error() string {
	return "invalid data"
}

func (e *Error) add(field, message string) {
	if e.Issues == nil {
		e.Issues = make(map[string][]string)
	}
	e.Issues[field] = append(e.Issues[field], message)
}

func (e *Error) has(field string) bool {
	_, ok := e.Issues[field]
	return ok
}

var tagsPattern = regexp.MustCompile(`^[a-zA-Z0-9\s,.-]+$`)

var check = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report issues under JSON field names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseInput validates and reshapes raw form input into a ProjectData record.
// Comma-separated tags and image URLs become trimmed slices; empty segments
// are dropped. On failure the returned Error enumerates every offending field.
func ParseInput(in Input) (domain.ProjectData, *Error) {
	verr := &Error{}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	rawTags := strings.TrimSpace(in.Tags)
	var tags []string
	switch {
	case rawTags == "":
		verr.add("tags", "At least one tag is required.")
	case !tagsPattern.MatchString(rawTags):
		verr.add("tags", "Tags can only contain letters, numbers, spaces, commas, hyphens and periods.")
	default:
		tags = splitAndTrim(rawTags)
		if len(tags) == 0 {
			verr.add("tags", "At least one tag is required.")
		}
	}

	imageURLs := splitAndTrim(in.ImageURLs)

	data := domain.ProjectData{
		Title:         title,
		Description:   description,
		Tags:          tags,
		ImageURLs:     imageURLs,
		LiveDemoURL:   strings.TrimSpace(in.LiveDemoURL),
		SourceCodeURL: strings.TrimSpace(in.SourceCodeURL),
	}

	if perr := ValidatePayload(data); perr != nil {
		for field, msgs := range perr.Issues {
			// Input-stage tag issues already carry the form-facing message.
			if field == "tags" && verr.has("tags") {
				continue
			}
			for _, m := range msgs {
				verr.add(field, m)
			}
		}
	}

	if len(verr.Issues) > 0 {
		return domain.ProjectData{}, verr
	}
	return data, nil
}

// ValidatePayload re-validates an already-shaped record before persistence.
func ValidatePayload(data domain.ProjectData) *Error {
	p := payload{
		Title:         data.Title,
		Description:   data.Description,
		Tags:          data.Tags,
		ImageURLs:     data.ImageURLs,
		LiveDemoURL:   data.LiveDemoURL,
		SourceCodeURL: data.SourceCodeURL,
	}

	err := check.Struct(p)
	if err == nil {
		return nil
	}

	verr := &Error{}
	ferrs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.add("", err.Error())
		return verr
	}
	for _, fe := range ferrs {
		verr.add(fieldName(fe), message(fe))
	}
	return verr
}

// fieldName strips the struct prefix and any slice index so "payload.imageUrls[1]"
// reports as "imageUrls".
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fieldName(fe) {
	case "title":
		switch fe.Tag() {
		case "required":
			return "Title is required."
		case "min":
			return "Title must be at least 3 characters."
		case "max":
			return "Title must be at most 100 characters."
		}
	case "description":
		switch fe.Tag() {
		case "required":
			return "Description must be at least 10 characters."
		case "min":
			return "Description must be at least 10 characters."
		case "max":
			return "Description must be at most 1000 characters."
		}
	case "tags":
		return "At least one tag is required."
	case "imageUrls":
		return "One or more image URLs are invalid. Please use comma-separated valid URLs."
	case "liveDemoUrl":
		return "Please enter a valid URL for the live demo."
	case "sourceCodeUrl":
		return "Please enter a valid URL for the source code."
	}
	return fmt.Sprintf("Invalid value for %s.", fieldName(fe))
}

func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
