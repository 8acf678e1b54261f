// Package email delivers processed documents as message attachments over
// SMTP. Connections are pooled per server and sender, and batch sends are
// grouped so every message to the same account reuses one session.
package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
)

const attachmentContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Message is one outgoing email with a single document attachment.
type Message struct {
	Recipient  string
	Subject    string
	Body       string
	Filename   string
	Attachment []byte
}

// Result reports the outcome of one send.
type Result struct {
	Filename  string `json:"filename"`
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// Task pairs a message with the account that sends it, for batch mode.
type Task struct {
	Creds   Credentials
	Message Message
}

// Sender sends messages through a shared connection pool.
type Sender struct {
	pool *Pool
}

// NewSender creates a sender over the given pool. A nil pool gets a
// fresh one.
func NewSender(pool *Pool) *Sender {
	if pool == nil {
		pool = NewPool()
	}
	return &Sender{pool: pool}
}

// Close releases all pooled connections.
func (s *Sender) Close() {
	s.pool.Close()
}

// Send delivers one message. The connection stays checked out for the
// whole transaction, so concurrent sends over the same account queue up
// rather than interleave. On any SMTP failure the connection is
// discarded so the next attempt starts clean.
func (s *Sender) Send(creds Credentials, msg Message) error {
	payload, err := encodeMessage(creds.Sender, msg)
	if err != nil {
		return fmt.Errorf("building message for %s: %w", msg.Filename, err)
	}

	c, err := s.pool.Get(creds)
	if err != nil {
		return err
	}
	client := c.client

	err = func() error {
		if err := client.Mail(creds.Sender); err != nil {
			return err
		}
		if err := client.Rcpt(msg.Recipient); err != nil {
			return err
		}
		w, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}()
	if err != nil {
		s.pool.Discard(c)
		return fmt.Errorf("sending %s to %s: %w", msg.Filename, msg.Recipient, err)
	}
	s.pool.Put(c)
	return nil
}

// SendBatch delivers many messages, grouped by account so each group
// shares one connection. Results come back in task order.
func (s *Sender) SendBatch(tasks []Task) []Result {
	groups := make(map[string][]int)
	var order []string
	for i, t := range tasks {
		key := t.Creds.key()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	results := make([]Result, len(tasks))
	for _, key := range order {
		for _, i := range groups[key] {
			t := tasks[i]
			r := Result{Filename: t.Message.Filename, Recipient: t.Message.Recipient}
			if err := s.Send(t.Creds, t.Message); err != nil {
				r.Error = err.Error()
			} else {
				r.Success = true
			}
			results[i] = r
		}
	}
	return results
}

// encodeMessage renders the RFC 5322 message: headers, a plain-text
// body part, and the base64-encoded document attachment.
func encodeMessage(sender string, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.Recipient)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	part, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(msg.Body)); err != nil {
		return nil, err
	}

	attHeader := textproto.MIMEHeader{}
	attHeader.Set("Content-Type", attachmentContentType)
	attHeader.Set("Content-Transfer-Encoding", "base64")
	attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", msg.Filename))
	part, err = mw.CreatePart(attHeader)
	if err != nil {
		return nil, err
	}
	if err := writeBase64(part, msg.Attachment); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64 writes data base64-encoded in 76-character lines.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := 76
		if n > len(encoded) {
			n = len(encoded)
		}
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
