// Package ws serves the site's JSON-RPC 2.0 API over WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/LLwassim/LLwassim.github.io/contact"
	"github.com/LLwassim/LLwassim.github.io/content"
	"github.com/LLwassim/LLwassim.github.io/logger"
	"github.com/LLwassim/LLwassim.github.io/middleware"
	"github.com/LLwassim/LLwassim.github.io/rpc"
	"github.com/LLwassim/LLwassim.github.io/site"
	"github.com/LLwassim/LLwassim.github.io/watch"
	"github.com/LLwassim/LLwassim.github.io/work"
	"github.com/coder/websocket"
	"github.com/sourcegraph/jsonrpc2"
)

const maxLoggedParams = 200

// RPCHandler handles JSON-RPC 2.0 over WebSocket.
type RPCHandler struct {
	devMode bool

	workStore   work.Store
	library     *content.Library
	siteStore   *site.Store
	contact     *contact.Service
	workWatcher *watch.WorkListWatcher
	siteWatcher *watch.SiteWatcher
}

func NewRPCHandler(devMode bool, workStore work.Store, library *content.Library, siteStore *site.Store, contactService *contact.Service, workWatcher *watch.WorkListWatcher, siteWatcher *watch.SiteWatcher) *RPCHandler {
	return &RPCHandler{
		devMode:     devMode,
		workStore:   workStore,
		library:     library,
		siteStore:   siteStore,
		contact:     contactService,
		workWatcher: workWatcher,
		siteWatcher: siteWatcher,
	}
}

func (h *RPCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: h.devMode,
	})
	if err != nil {
		slog.Error("failed to accept websocket", "error", err)
		return
	}

	stream := newWebSocketStream(conn)
	h.HandleStream(r.Context(), stream, logger.NewID(), middleware.ClientIP(r))
}

// HandleStream serves one JSON-RPC connection until the peer disconnects.
func (h *RPCHandler) HandleStream(ctx context.Context, stream jsonrpc2.ObjectStream, connID, clientIP string) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r, "websocket connection crashed", "connId", connID)
		}
	}()

	log := slog.With("connId", connID)
	log.Info("new connection")

	state := &rpcConnState{
		connID:   connID,
		clientIP: clientIP,
		log:      log,
	}

	handler := &rpcMethodHandler{
		RPCHandler: h,
		state:      state,
		log:        log,
	}

	rpcConn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.AsyncHandler(handler))
	state.setConn(rpcConn)

	<-rpcConn.DisconnectNotify()

	state.cleanup(h.workWatcher, h.siteWatcher)
	log.Info("connection closed")
}

// rpcConnState tracks per-connection state.
type rpcConnState struct {
	mu            sync.Mutex
	connID        string
	clientIP      string
	conn          *jsonrpc2.Conn
	notifier      *JSONRPCNotifier
	log           *slog.Logger
	subscriptions map[string]watch.Watcher // subID → watcher, for ownership checks
}

func (s *rpcConnState) setConn(conn *jsonrpc2.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.notifier = NewJSONRPCNotifier(conn)
	s.subscriptions = make(map[string]watch.Watcher)
	s.mu.Unlock()
}

func (s *rpcConnState) getNotifier() watch.Notifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifier
}

func (s *rpcConnState) trackSubscription(id string, watcher watch.Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscriptions == nil {
		// Connection already closed.
		watcher.Unsubscribe(id)
		return
	}
	s.subscriptions[id] = watcher
}

func (s *rpcConnState) ownsSubscription(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.subscriptions[id]
	return ok
}

func (s *rpcConnState) untrackSubscription(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscriptions, id)
}

// cleanup drops every subscription delivering to this connection, including
// any whose subscribe reply was still in flight when the peer went away.
func (s *rpcConnState) cleanup(watchers ...watch.Watcher) {
	s.mu.Lock()
	notifier := s.notifier
	s.subscriptions = nil
	s.mu.Unlock()

	if notifier == nil {
		return
	}
	for _, w := range watchers {
		if ids := w.RemoveByNotifier(notifier); len(ids) > 0 {
			s.log.Debug("dropped subscriptions on close", "count", len(ids))
		}
	}
}

type rpcMethodHandler struct {
	*RPCHandler
	state *rpcConnState
	log   *slog.Logger
}

func (h *rpcMethodHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r, "rpc handler panic", "method", req.Method, "connId", h.state.connID)
		}
	}()

	if req.Params != nil {
		h.log.Debug("received request", "method", req.Method, "id", req.ID, "params", logger.Truncate(string(*req.Params), maxLoggedParams))
	} else {
		h.log.Debug("received request", "method", req.Method, "id", req.ID)
	}

	switch req.Method {
	// site namespace
	case "site.get":
		h.handleSiteGet(ctx, conn, req)
	case "site.subscribe":
		h.handleSiteSubscribe(ctx, conn, req)
	case "site.unsubscribe":
		h.handleWatcherUnsubscribe(ctx, conn, req, h.siteWatcher, "site")
	case "experience.list":
		h.handleExperienceList(ctx, conn, req)
	// work namespace
	case "work.categories":
		h.handleWorkCategories(ctx, conn, req)
	case "work.filter":
		h.handleWorkFilter(ctx, conn, req)
	case "work.get":
		h.handleWorkGet(ctx, conn, req)
	case "work.list.subscribe":
		h.handleWorkListSubscribe(ctx, conn, req)
	case "work.list.select":
		h.handleWorkListSelect(ctx, conn, req)
	case "work.list.unsubscribe":
		h.handleWatcherUnsubscribe(ctx, conn, req, h.workWatcher, "work list")
	// writing namespace
	case "writing.list":
		h.handleWritingList(ctx, conn, req)
	// contact namespace
	case "contact.submit":
		h.handleContactSubmit(ctx, conn, req)
	default:
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeMethodNotFound, "method not found: "+req.Method)
	}
}

func (h *rpcMethodHandler) reply(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, result any) {
	if req.Notif {
		return
	}
	if err := conn.Reply(ctx, req.ID, result); err != nil {
		h.log.Error("failed to send response", "method", req.Method, "error", err)
	}
}

func (h *rpcMethodHandler) replyError(ctx context.Context, conn *jsonrpc2.Conn, id jsonrpc2.ID, code int64, message string) {
	err := &jsonrpc2.Error{
		Code:    code,
		Message: message,
	}
	if replyErr := conn.ReplyWithError(ctx, id, err); replyErr != nil {
		h.log.Error("failed to send error response", "error", replyErr)
	}
}

// unmarshalParams decodes req.Params into v. Absent params leave v at its
// zero value, which every method here treats as its defaults.
func unmarshalParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return nil
	}
	return json.Unmarshal(*req.Params, v)
}

func requireParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return errors.New("params required")
	}
	return json.Unmarshal(*req.Params, v)
}

func (h *rpcMethodHandler) handleWatcherUnsubscribe(
	ctx context.Context,
	conn *jsonrpc2.Conn,
	req *jsonrpc2.Request,
	watcher watch.Watcher,
	logName string,
) {
	var params rpc.UnsubscribeParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}
	if params.ID == "" {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "id is required")
		return
	}

	watcher.Unsubscribe(params.ID)
	h.state.untrackSubscription(params.ID)
	h.log.Debug("unsubscribed", "watcher", logName, "watchId", params.ID)

	h.reply(ctx, conn, req, struct{}{})
}

// webSocketStream adapts coder/websocket to jsonrpc2.ObjectStream.
type webSocketStream struct {
	conn *websocket.Conn
	mu   sync.Mutex // protects writes
}

func newWebSocketStream(conn *websocket.Conn) *webSocketStream {
	return &webSocketStream{conn: conn}
}

func (s *webSocketStream) ReadObject(v any) error {
	_, data, err := s.conn.Read(context.Background())
	if err != nil {
		// Normal close frames end the jsonrpc2 connection cleanly.
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return io.EOF
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *webSocketStream) WriteObject(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Write(context.Background(), websocket.MessageText, data)
}

func (s *webSocketStream) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "")
}

var _ jsonrpc2.ObjectStream = (*webSocketStream)(nil)
