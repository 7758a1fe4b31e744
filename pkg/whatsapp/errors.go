package whatsapp

import "errors"

// ErrMissingCredentials is returned by NewClient when the API token or phone number id is empty.
var ErrMissingCredentials = errors.New("api token and phone number id are required")
