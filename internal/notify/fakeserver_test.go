package notify

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type publishedMsg struct {
	subject string
	payload []byte
}

// fakeNATS speaks just enough of the NATS client protocol for publish and
// flush: INFO on connect, PONG for PING, and records PUB frames.
type fakeNATS struct {
	ln    net.Listener
	wg    sync.WaitGroup
	mu    sync.Mutex
	conns []net.Conn
	msgs  []publishedMsg
}

func startFakeNATS(t *testing.T) *fakeNATS {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeNATS{ln: ln}
	s.wg.Add(1)
	go s.accept()
	t.Cleanup(func() {
		_ = ln.Close()
		s.mu.Lock()
		for _, c := range s.conns {
			_ = c.Close()
		}
		s.mu.Unlock()
		s.wg.Wait()
	})
	return s
}

func (s *fakeNATS) URL() string { return "nats://" + s.ln.Addr().String() }

func (s *fakeNATS) published() []publishedMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]publishedMsg(nil), s.msgs...)
}

func (s *fakeNATS) accept() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *fakeNATS) serve(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	port := s.ln.Addr().(*net.TCPAddr).Port
	_, _ = fmt.Fprintf(conn, "INFO {\"server_id\":\"fake\",\"version\":\"2.10.0\",\"proto\":1,"+
		"\"host\":\"127.0.0.1\",\"port\":%d,\"max_payload\":1048576}\r\n", port)

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "PING":
			_, _ = io.WriteString(conn, "PONG\r\n")
		case "PUB":
			if len(fields) < 3 {
				return
			}
			n, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				return
			}
			buf := make([]byte, n+2)
			if _, err := io.ReadFull(r, buf); err != nil {
				return
			}
			s.mu.Lock()
			s.msgs = append(s.msgs, publishedMsg{subject: fields[1], payload: buf[:n]})
			s.mu.Unlock()
		}
	}
}
