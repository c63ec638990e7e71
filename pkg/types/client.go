package types

// Client tells on which side of the installation an extension lives.
type Client string

const (
	// ClientNone is used by extensions that are not client-bound (component, plugin)
	ClientNone Client = ""

	// ClientSite is the front-end
	ClientSite Client = "site"

	// ClientAdministrator is the back-end
	ClientAdministrator Client = "administrator"
)

// IsSite reports whether the client is the front-end. Everything else,
// including an unresolved client, is placed on the back-end by the mapper.
func (c Client) IsSite() bool {
	return c == ClientSite
}

// String returns the client as written in descriptors
func (c Client) String() string {
	return string(c)
}
