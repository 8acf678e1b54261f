package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"sync"
)

// Pool keeps authenticated SMTP clients keyed by server and sender so a
// batch of sends over the same account reuses one connection. A checked
// out connection is locked to its caller until Put or Discard, so
// concurrent sends over one account serialize instead of interleaving
// commands on the wire.
type Pool struct {
	mu    sync.Mutex
	conns map[string]*conn
}

// conn wraps one SMTP session. The mutex is held from Get until Put or
// Discard, covering the whole MAIL/RCPT/DATA exchange.
type conn struct {
	mu     sync.Mutex
	client *smtp.Client
}

// NewPool creates an empty connection pool.
func NewPool() *Pool {
	return &Pool{conns: make(map[string]*conn)}
}

// Credentials identify one sending account on one server.
type Credentials struct {
	Server   ServerConfig
	Sender   string
	Password string
}

func (c Credentials) key() string {
	return fmt.Sprintf("%s:%d:%s", c.Server.Host, c.Server.Port, c.Sender)
}

// Get checks out the connection for the credentials, dialing and
// authenticating on first use. The caller owns the connection until it
// hands it back with Put or drops it with Discard.
func (p *Pool) Get(creds Credentials) (*conn, error) {
	p.mu.Lock()
	c, ok := p.conns[creds.key()]
	if !ok {
		c = &conn{}
		p.conns[creds.key()] = c
	}
	p.mu.Unlock()

	c.mu.Lock()
	if c.client == nil {
		client, err := dial(creds.Server)
		if err != nil {
			c.mu.Unlock()
			return nil, fmt.Errorf("connecting to %s: %w", creds.Server.Addr(), err)
		}
		auth := smtp.PlainAuth("", creds.Sender, creds.Password, creds.Server.Host)
		if err := client.Auth(auth); err != nil {
			client.Close()
			c.mu.Unlock()
			return nil, fmt.Errorf("authenticating %s: %w", creds.Sender, err)
		}
		c.client = client
	}
	return c, nil
}

// Put returns a healthy connection to the pool.
func (p *Pool) Put(c *conn) {
	c.mu.Unlock()
}

// Discard closes a checked-out connection after a send failure so the
// next Get dials fresh.
func (p *Pool) Discard(c *conn) {
	c.client.Close()
	c.client = nil
	c.mu.Unlock()
}

// Close quits every pooled connection, waiting out in-flight sends.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, c := range p.conns {
		c.mu.Lock()
		if c.client != nil {
			c.client.Quit()
			c.client = nil
		}
		c.mu.Unlock()
		delete(p.conns, key)
	}
}

func dial(server ServerConfig) (*smtp.Client, error) {
	if server.Port == 465 {
		tconn, err := tls.Dial("tcp", server.Addr(), &tls.Config{ServerName: server.Host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(tconn, server.Host)
	}

	client, err := smtp.Dial(server.Addr())
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: server.Host}); err != nil {
			client.Close()
			return nil, err
		}
	}
	return client, nil
}
