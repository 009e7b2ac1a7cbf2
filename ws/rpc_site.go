package ws

import (
	"context"
	"errors"

	"github.com/LLwassim/LLwassim.github.io/contact"
	"github.com/LLwassim/LLwassim.github.io/rpc"
	"github.com/LLwassim/LLwassim.github.io/site"
	"github.com/sourcegraph/jsonrpc2"
)

func (h *rpcMethodHandler) handleSiteGet(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	h.reply(ctx, conn, req, h.siteStore.Get())
}

func (h *rpcMethodHandler) handleSiteSubscribe(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	id, cfg := h.siteWatcher.Subscribe(h.state.getNotifier())
	h.state.trackSubscription(id, h.siteWatcher)
	h.log.Debug("subscribed", "watcher", "site", "watchId", id)

	h.reply(ctx, conn, req, rpc.SiteSubscribeResult{ID: id, Site: cfg})
}

func (h *rpcMethodHandler) handleExperienceList(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	exp := h.siteStore.Get().Experience
	if exp == nil {
		exp = []site.Experience{}
	}
	h.reply(ctx, conn, req, rpc.ExperienceListResult{Experience: exp})
}

func (h *rpcMethodHandler) handleWritingList(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.WritingListParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	h.reply(ctx, conn, req, rpc.WritingListResult{Posts: h.library.Writing(params.Drafts)})
}

// Application error codes for contact.submit, in the JSON-RPC server range.
const (
	codeRateLimited   int64 = -32001
	codeInProgress    int64 = -32002
	codeUpstream      int64 = -32003
	codeNotConfigured int64 = -32004
)

func (h *rpcMethodHandler) handleContactSubmit(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.ContactSubmitParams
	if err := requireParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	receipt, err := h.contact.Submit(ctx, h.state.clientIP, params)
	if err != nil {
		code, msg := contactErrorCode(err)
		h.replyError(ctx, conn, req.ID, code, msg)
		return
	}

	h.reply(ctx, conn, req, rpc.ContactSubmitResult(receipt))
}

func contactErrorCode(err error) (int64, string) {
	switch {
	case errors.Is(err, contact.ErrInvalidSubmission):
		return jsonrpc2.CodeInvalidParams, err.Error()
	case errors.Is(err, contact.ErrRateLimited):
		return codeRateLimited, err.Error()
	case errors.Is(err, contact.ErrInProgress):
		return codeInProgress, err.Error()
	case errors.Is(err, contact.ErrNotConfigured):
		return codeNotConfigured, err.Error()
	case errors.Is(err, contact.ErrRejected):
		return codeUpstream, "form backend rejected the submission"
	default:
		return codeUpstream, "failed to deliver submission"
	}
}
