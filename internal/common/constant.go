package common

// AccessTokenHeaderName is the HTTP header key used to carry the access
// token on outbound requests.
const AccessTokenHeaderName = "access_token"

// PlaceholderAccessToken is stored in place of a real credential while the
// app runs in local-only mode. It must never count as being authenticated.
const PlaceholderAccessToken = "local-only"
