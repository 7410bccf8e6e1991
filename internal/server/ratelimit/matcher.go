package ratelimit

import "strings"

// unlimited lists the dashboard routes that never consume tokens.
var unlimited = []EndpointConfig{
	{Path: "/health", Method: "GET"},
}

// MatchEndpoint picks the tier for a dashboard request. An exact path wins;
// otherwise the longest tier path ending in "/" that prefixes the request
// applies, so "/tables/" covers both table uploads. Health checks match an
// empty tier, which Allow treats as unlimited. Nil means the default limit.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	for _, u := range unlimited {
		if u.Path == path && u.Method == method {
			return &EndpointConfig{}
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if c.isPrefix() && strings.HasPrefix(path, c.Path) && (best == nil || len(c.Path) > len(best.Path)) {
			best = c
		}
	}
	return best
}

func (c *EndpointConfig) isPrefix() bool {
	return strings.HasSuffix(c.Path, "/")
}

// key names the bucket a request draws from: one per prefix tier, else one per path.
func (c *EndpointConfig) key(path string) string {
	if c.isPrefix() {
		return c.Path
	}
	return path
}
