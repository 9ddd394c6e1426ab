package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	lxerrors "github.com/matzehuels/lexgraph/pkg/errors"
	"github.com/matzehuels/lexgraph/pkg/explore"
	"github.com/matzehuels/lexgraph/pkg/graph"
	"github.com/matzehuels/lexgraph/pkg/lexicon"
)

// subscriberBuffer is the number of expansions a websocket subscriber may
// lag behind before it is dropped. Each expansion is one event however many
// nodes it adds.
const subscriberBuffer = 64

type subscriber struct {
	events chan Event
	once   sync.Once

	// lagging is set before events is closed when the subscriber fell
	// behind, so the stream can tell that apart from the session ending.
	lagging bool
}

func (sub *subscriber) close() { sub.once.Do(func() { close(sub.events) }) }

// session is one explorer plus its websocket subscribers. pubMu orders
// expansions and their broadcasts, so subscribers see events in the order
// the graph grew.
type session struct {
	id      string
	created time.Time
	x       *explore.Explorer

	pubMu  sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
}

// expand expands the node for id and broadcasts the result.
func (sess *session) expand(ctx context.Context, id lexicon.SenseID) (*explore.Result, error) {
	sess.pubMu.Lock()
	defer sess.pubMu.Unlock()
	if sess.closed {
		return nil, lxerrors.New(lxerrors.ErrCodeSessionNotFound, "session %s has ended", sess.id)
	}

	res, err := sess.x.ExpandID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !res.AlreadyExpanded {
		sess.publishLocked(expansionEvent(res))
	}
	return res, nil
}

// subscribe registers a subscriber and returns it together with a snapshot
// taken under the same lock, so no event is missed or seen twice.
func (sess *session) subscribe() (*subscriber, graph.Graph, error) {
	sess.pubMu.Lock()
	defer sess.pubMu.Unlock()
	if sess.closed {
		return nil, graph.Graph{}, lxerrors.New(lxerrors.ErrCodeSessionNotFound, "session %s has ended", sess.id)
	}
	sub := &subscriber{events: make(chan Event, subscriberBuffer)}
	sess.subs[sub] = struct{}{}
	return sub, graph.FromExplorer(sess.x), nil
}

func (sess *session) unsubscribe(sub *subscriber) {
	sess.pubMu.Lock()
	defer sess.pubMu.Unlock()
	delete(sess.subs, sub)
	sub.close()
}

func (sess *session) publishLocked(ev Event) {
	for sub := range sess.subs {
		select {
		case sub.events <- ev:
		default:
			// Too far behind; the stream ends and the client re-syncs.
			delete(sess.subs, sub)
			sub.lagging = true
			sub.close()
		}
	}
}

func (sess *session) close() {
	sess.pubMu.Lock()
	defer sess.pubMu.Unlock()
	sess.closed = true
	for sub := range sess.subs {
		delete(sess.subs, sub)
		sub.close()
	}
}

// sessionStore holds live sessions keyed by id.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

func (st *sessionStore) add(x *explore.Explorer) *session {
	sess := &session{
		id:      uuid.NewString(),
		created: time.Now(),
		x:       x,
		subs:    make(map[*subscriber]struct{}),
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.id] = sess
	return sess
}

func (st *sessionStore) get(id string) (*session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, lxerrors.New(lxerrors.ErrCodeInvalidInput, "malformed session id %q", id)
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, lxerrors.New(lxerrors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	return sess, nil
}

func (st *sessionStore) remove(id string) (*session, error) {
	sess, err := st.get(id)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
	sess.close()
	return sess, nil
}

func (st *sessionStore) closeAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*session)
	st.mu.Unlock()
	for _, sess := range sessions {
		sess.close()
	}
}

func (st *sessionStore) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
