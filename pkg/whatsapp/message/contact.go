package message

// AddressType tags a contact address.
type AddressType string

const (
	AddressHome AddressType = "HOME"
	AddressWork AddressType = "WORK"
)

// Contact is a vCard-like entry of a contacts message. Only Name.FormattedName is mandatory.
type Contact struct {
	Addresses []Address     `json:"addresses,omitempty" validate:"omitempty,dive"`
	Birthday  string        `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Emails    []Email       `json:"emails,omitempty" validate:"omitempty,dive"`
	Name      Name          `json:"name"`
	Org       *Organization `json:"org,omitempty"`
	Phones    []Phone       `json:"phones,omitempty"`
	URLs      []URL         `json:"urls,omitempty" validate:"omitempty,dive"`
}

type Name struct {
	FormattedName string `json:"formatted_name" validate:"required"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	MiddleName    string `json:"middle_name,omitempty"`
	Suffix        string `json:"suffix,omitempty"`
	Prefix        string `json:"prefix,omitempty"`
}

type Address struct {
	Street      string      `json:"street,omitempty"`
	City        string      `json:"city,omitempty"`
	State       string      `json:"state,omitempty"`
	Zip         string      `json:"zip,omitempty"`
	Country     string      `json:"country,omitempty"`
	CountryCode string      `json:"country_code,omitempty"`
	Type        AddressType `json:"type,omitempty" validate:"omitempty,oneof=HOME WORK"`
}

type Email struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Type  string `json:"type,omitempty"`
}

type Phone struct {
	Phone string `json:"phone,omitempty"`
	WaID  string `json:"wa_id,omitempty"`
	Type  string `json:"type,omitempty"`
}

type URL struct {
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
	Type string `json:"type,omitempty"`
}

type Organization struct {
	Company    string `json:"company,omitempty"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
}
