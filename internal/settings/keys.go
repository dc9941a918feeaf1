package settings

// Configuration keys read by the request logger.
const (
	KeyInterceptorEnabled        = "interceptor.enabled"
	KeyIPAddressEnabled          = "log.ip.address.enabled"
	KeyHTTPMethodEnabled         = "log.http.method.enabled"
	KeyHTTPMethodsLogged         = "log.http.methods.logged"
	KeyURIEnabled                = "log.uri.enabled"
	KeyURIsLoggedPattern         = "log.uris.logged.pattern"
	KeyURIQueryParamsEnabled     = "log.uri.query.params.enabled"
	KeyProcessingDurationEnabled = "log.request.processing.duration.enabled"
	KeyElementPattern            = "log.pattern.for.each.log.record.element"
)

// Wildcard matches every method or URI.
const Wildcard = "*"

// RequiredKeys lists the keys a snapshot must carry to be published.
var RequiredKeys = []string{
	KeyIPAddressEnabled,
	KeyHTTPMethodEnabled,
	KeyHTTPMethodsLogged,
	KeyURIEnabled,
	KeyURIsLoggedPattern,
	KeyURIQueryParamsEnabled,
	KeyProcessingDurationEnabled,
	KeyElementPattern,
}

// Defaults returns the built-in value of every key.
func Defaults() map[string]string {
	return map[string]string{
		KeyInterceptorEnabled:        "true",
		KeyIPAddressEnabled:          "true",
		KeyHTTPMethodEnabled:         "true",
		KeyHTTPMethodsLogged:         Wildcard,
		KeyURIEnabled:                "true",
		KeyURIsLoggedPattern:         Wildcard,
		KeyURIQueryParamsEnabled:     "false",
		KeyProcessingDurationEnabled: "true",
		KeyElementPattern:            "%s: %s",
	}
}
