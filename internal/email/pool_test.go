package email

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTP is a plaintext SMTP server that tracks delivered messages and
// records any command arriving out of transaction order.
type fakeSMTP struct {
	ln         net.Listener
	mu         sync.Mutex
	messages   []string
	violations []string
}

func newFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	f := &fakeSMTP{ln: ln}
	go f.serve()
	t.Cleanup(func() { ln.Close() })
	return f
}

func (f *fakeSMTP) server() ServerConfig {
	addr := f.ln.Addr().(*net.TCPAddr)
	return ServerConfig{Host: "127.0.0.1", Port: addr.Port}
}

func (f *fakeSMTP) serve() {
	for {
		c, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(c)
	}
}

func (f *fakeSMTP) handle(c net.Conn) {
	defer c.Close()
	r := bufio.NewReader(c)
	reply := func(line string) { fmt.Fprintf(c, "%s\r\n", line) }

	reply("220 fake ESMTP")
	state := "idle"
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			reply("250-fake")
			reply("250 AUTH PLAIN")
		case strings.HasPrefix(cmd, "AUTH"):
			reply("235 accepted")
		case strings.HasPrefix(cmd, "MAIL"):
			if state != "idle" {
				f.record("MAIL during " + state)
				reply("503 bad sequence")
				continue
			}
			state = "mail"
			reply("250 ok")
		case strings.HasPrefix(cmd, "RCPT"):
			if state != "mail" {
				f.record("RCPT during " + state)
				reply("503 bad sequence")
				continue
			}
			state = "rcpt"
			reply("250 ok")
		case cmd == "DATA":
			if state != "rcpt" {
				f.record("DATA during " + state)
				reply("503 bad sequence")
				continue
			}
			reply("354 go ahead")
			var body strings.Builder
			for {
				dl, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if strings.TrimRight(dl, "\r\n") == "." {
					break
				}
				body.WriteString(dl)
			}
			f.mu.Lock()
			f.messages = append(f.messages, body.String())
			f.mu.Unlock()
			state = "idle"
			reply("250 delivered")
		case cmd == "QUIT":
			reply("221 bye")
			return
		default:
			reply("250 ok")
		}
	}
}

func (f *fakeSMTP) record(violation string) {
	f.mu.Lock()
	f.violations = append(f.violations, violation)
	f.mu.Unlock()
}

func (f *fakeSMTP) delivered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func (f *fakeSMTP) badSequences() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.violations...)
}

func testCredentials(srv *fakeSMTP) Credentials {
	return Credentials{Server: srv.server(), Sender: "sender@example.com", Password: "pw"}
}

func TestSendDelivers(t *testing.T) {
	srv := newFakeSMTP(t)
	s := NewSender(nil)
	defer s.Close()

	err := s.Send(testCredentials(srv), Message{
		Recipient:  "dest@example.com",
		Subject:    "Updated resume",
		Body:       "Attached.",
		Filename:   "resume.docx",
		Attachment: []byte("PK fake bytes"),
	})
	require.NoError(t, err)

	delivered := srv.delivered()
	require.Len(t, delivered, 1)
	assert.Contains(t, delivered[0], "Subject: Updated resume")
	assert.Contains(t, delivered[0], `filename="resume.docx"`)
	assert.Empty(t, srv.badSequences())
}

func TestSendConcurrentSameAccount(t *testing.T) {
	srv := newFakeSMTP(t)
	s := NewSender(nil)
	defer s.Close()
	creds := testCredentials(srv)

	const sends = 8
	var wg sync.WaitGroup
	errs := make([]error, sends)
	for i := 0; i < sends; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Send(creds, Message{
				Recipient:  fmt.Sprintf("dest%d@example.com", i),
				Subject:    fmt.Sprintf("resume %d", i),
				Filename:   fmt.Sprintf("resume_%d.docx", i),
				Attachment: []byte("PK fake bytes"),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "send %d", i)
	}
	assert.Len(t, srv.delivered(), sends)
	assert.Empty(t, srv.badSequences(),
		"transactions over one shared connection never interleave")
}

func TestSendReusesConnection(t *testing.T) {
	srv := newFakeSMTP(t)
	s := NewSender(nil)
	defer s.Close()
	creds := testCredentials(srv)

	for i := 0; i < 3; i++ {
		msg := Message{
			Recipient:  "dest@example.com",
			Filename:   fmt.Sprintf("resume_%d.docx", i),
			Attachment: []byte("PK fake bytes"),
		}
		require.NoError(t, s.Send(creds, msg))
	}
	assert.Len(t, srv.delivered(), 3)
}
