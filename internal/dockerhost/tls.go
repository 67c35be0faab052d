package dockerhost

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/tlsconfig"
)

// dialTLS connects to a remote engine over TCP with client-certificate
// verification, using the key/cert/ca trio from $DOCKER_CERT_PATH (falling
// back to ~/.docker), the same convention the docker CLI itself honors.
func dialTLS(hostSpec string) (*client.Client, error) {
	certPath := os.Getenv("DOCKER_CERT_PATH")
	if certPath == "" {
		home, _ := os.UserHomeDir()
		certPath = filepath.Join(home, ".docker")
	}

	tlsOpts := tlsconfig.Options{
		CAFile:             filepath.Join(certPath, "ca.pem"),
		CertFile:           filepath.Join(certPath, "cert.pem"),
		KeyFile:            filepath.Join(certPath, "key.pem"),
		InsecureSkipVerify: false,
	}
	tlsc, err := tlsconfig.Client(tlsOpts)
	if err != nil {
		return nil, fmt.Errorf("loading TLS material from %s: %w", certPath, err)
	}

	tcpHost := "tcp://" + strings.TrimPrefix(hostSpec, "tls://")
	httpClient := &http.Client{Transport: &http.Transport{TLSClientConfig: tlsc}}

	return client.NewClientWithOpts(
		client.WithHost(tcpHost),
		client.WithHTTPClient(httpClient),
		client.WithAPIVersionNegotiation(),
	)
}
