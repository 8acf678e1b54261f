package email

import "fmt"

// ServerConfig is one SMTP endpoint. Port 465 connects over implicit
// TLS; any other port opens plaintext and upgrades with STARTTLS.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Addr returns the host:port dial address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// knownServers maps provider names to their SMTP endpoints.
var knownServers = map[string]ServerConfig{
	"Gmail":     {Host: "smtp.gmail.com", Port: 465},
	"Office365": {Host: "smtp.office365.com", Port: 587},
	"Yahoo":     {Host: "smtp.mail.yahoo.com", Port: 465},
}

// LookupServer resolves a provider name to its endpoint. Unknown names
// are treated as a literal hostname with the given port, so custom
// servers work without a table entry.
func LookupServer(name string, port int) ServerConfig {
	if cfg, ok := knownServers[name]; ok {
		return cfg
	}
	if port == 0 {
		port = 587
	}
	return ServerConfig{Host: name, Port: port}
}
