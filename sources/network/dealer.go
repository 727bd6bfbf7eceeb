package network

import (
	"chokwadi/sources/configuration"
	"chokwadi/sources/tracing"

	"golang.org/x/net/proxy"
)

// NewDialer returns a SOCKS5 dialer when the proxy is enabled, a direct dialer
// otherwise. Outbound provider traffic goes through whatever this returns.
func NewDialer(config *configuration.Config, log *tracing.Logger) proxy.Dialer {
	if !config.Network.ProxyEnabled {
		return proxy.Direct
	}

	dialer, err := proxy.SOCKS5(
		"tcp",
		config.Network.ProxyAddress,
		&proxy.Auth{User: config.Network.ProxyUser, Password: config.Network.ProxyPass},
		proxy.Direct,
	)

	if err != nil {
		log.F("Failed to create proxy dialer", tracing.InnerError, err)
	}

	return dialer
}
