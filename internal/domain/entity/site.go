package entity

// Site is a physical production site (brewery, distillery, warehouse).
type Site struct {
	ID   string
	Name string
}

// Location is a storage location inside a site.
type Location struct {
	ID     string
	SiteID string
	Name   string
}

// Equipment is a vessel (fermenter, brite tank...) belonging to a site.
type Equipment struct {
	ID     string
	SiteID string
	Name   string
}
