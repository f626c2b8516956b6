package mock

import (
	"net"

	"github.com/miekg/dns"
)

// ResponseWriter is a dns.ResponseWriter which keeps the most recent message written to
// it. Remote defaults to 127.0.0.2:4053 and can be replaced to exercise per-client
// behaviour such as cookies and rate limiting.
type ResponseWriter struct {
	Local  net.Addr
	Remote net.Addr

	m *dns.Msg
}

func NewResponseWriter() *ResponseWriter {
	return &ResponseWriter{
		Local:  NewNetAddr("udp", "127.0.0.1:53"),
		Remote: NewNetAddr("udp", "127.0.0.2:4053"),
	}
}

// Get returns the last response, if any, and clears it.
func (t *ResponseWriter) Get() *dns.Msg {
	m := t.m
	t.m = nil

	return m
}

func (t *ResponseWriter) LocalAddr() net.Addr {
	return t.Local
}

func (t *ResponseWriter) RemoteAddr() net.Addr {
	return t.Remote
}

func (t *ResponseWriter) WriteMsg(m *dns.Msg) error {
	t.m = m

	return nil
}

func (t *ResponseWriter) Write([]byte) (int, error) {
	panic("mock.ResponseWriter does not expect Write() calls")
}

func (t *ResponseWriter) Close() error { return nil }
func (t *ResponseWriter) TsigStatus() error { return nil }
func (t *ResponseWriter) TsigTimersOnly(bool) {}
func (t *ResponseWriter) Hijack() {}
