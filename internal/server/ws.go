package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
	"github.com/matzehuels/lexgraph/pkg/observability"
)

const writeWait = 10 * time.Second

// Close reasons sent when a stream ends from the server side.
const (
	closeSessionEnded = "session ended"
	closeLagging      = "subscriber lagging"
)

// safeConn serializes writes to a websocket connection. The stream writes
// events from one goroutine and error replies from the reader goroutine.
type safeConn struct {
	c       *websocket.Conn
	writeMu sync.Mutex
}

func (s *safeConn) WriteJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.c.SetWriteDeadline(time.Now().Add(writeWait))
	return s.c.WriteJSON(v)
}

func (s *safeConn) WriteClose(code int, reason string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	return s.c.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sub, snap, err := sess.subscribe()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer sess.unsubscribe(sub)

	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session", sess.id, "err", err)
		return
	}
	defer c.Close()
	ws := &safeConn{c: c}

	ctx := r.Context()
	observability.Server().OnStreamOpen(ctx)
	defer observability.Server().OnStreamClose(ctx)
	s.logger.Debug("stream opened", "session", sess.id)

	if err := ws.WriteJSON(Event{Type: EventSnapshot, Graph: &snap}); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub.events {
			if err := ws.WriteJSON(ev); err != nil {
				// Unblock the reader.
				_ = c.Close()
				return
			}
		}
		if sub.lagging {
			s.logger.Warn("dropped lagging subscriber", "session", sess.id)
			_ = ws.WriteClose(websocket.CloseTryAgainLater, closeLagging)
		} else {
			_ = ws.WriteClose(websocket.CloseNormalClosure, closeSessionEnded)
		}
		_ = c.Close()
	}()

	for {
		var msg Message
		if err := c.ReadJSON(&msg); err != nil {
			break
		}
		if reply, ok := s.handleMessage(r, sess, msg); !ok {
			if err := ws.WriteJSON(reply); err != nil {
				break
			}
		}
	}

	sess.unsubscribe(sub)
	<-done
	s.logger.Debug("stream closed", "session", sess.id)
}

// handleMessage processes one inbound message. ok is false when reply holds
// an error event for the sender; successful activations are reported to all
// subscribers through the broadcast instead.
func (s *Server) handleMessage(r *http.Request, sess *session, msg Message) (reply Event, ok bool) {
	if msg.Type != MessageActivate {
		err := lxerrors.New(lxerrors.ErrCodeUnsupported, "unknown message type %q", msg.Type)
		return errorEvent(err), false
	}
	id, err := lexicon.ParseSenseID(msg.ID)
	if err != nil {
		return errorEvent(err), false
	}
	if _, err := sess.expand(r.Context(), id); err != nil {
		return errorEvent(err), false
	}
	return Event{}, true
}

func errorEvent(err error) Event {
	code := lxerrors.GetCode(err)
	if code == "" {
		code = lxerrors.ErrCodeInternal
	}
	return Event{Type: EventError, Code: string(code), Message: lxerrors.UserMessage(err)}
}
