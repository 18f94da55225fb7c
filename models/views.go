package models

// Card is the display record for one listing in the overview grid.
type Card struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Meta     []string `json:"meta"`
	Short    string   `json:"short"`
	Price    string   `json:"price"`
	ImageURL string   `json:"imageUrl,omitempty"`
	ImageAlt string   `json:"imageAlt,omitempty"`
	Link     string   `json:"link"`
}

// Contact is one way of reaching the advertiser.
type Contact struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Detail is the display record for the single-listing page.
type Detail struct {
	ID            string    `json:"id"`
	PageTitle     string    `json:"pageTitle"`
	Title         string    `json:"title"`
	City          string    `json:"city"`
	Posted        string    `json:"posted,omitempty"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	Type          string    `json:"type"`
	Sqm           string    `json:"sqm"`
	Bedrooms      string    `json:"bedrooms"`
	Deposit       string    `json:"deposit"`
	AvailableFrom string    `json:"availableFrom"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Contacts      []Contact `json:"contacts"`
}

// Submission holds the fields of the "place a listing" form.
type Submission struct {
	Title        string `json:"title" validate:"required"`
	City         string `json:"city" validate:"required"`
	Type         string `json:"type"`
	Price        string `json:"price"`
	Sqm          string `json:"sqm"`
	Bedrooms     string `json:"bedrooms"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
}

// Draft is a composed submission ready to open in a mail client.
type Draft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
}
