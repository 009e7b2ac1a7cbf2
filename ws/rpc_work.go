package ws

import (
	"context"

	"github.com/LLwassim/LLwassim.github.io/rpc"
	"github.com/LLwassim/LLwassim.github.io/watch"
	"github.com/LLwassim/LLwassim.github.io/work"
	"github.com/sourcegraph/jsonrpc2"
)

func (h *rpcMethodHandler) handleWorkCategories(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	tax := h.siteStore.Get().Taxonomy()

	selectors := tax.Selectors()
	result := rpc.WorkCategoriesResult{
		Categories: make([]rpc.CategoryButton, len(selectors)),
	}
	for i, sel := range selectors {
		result.Categories[i] = rpc.CategoryButton{
			Token: sel.String(),
			Label: tax.SelectorLabel(sel),
		}
	}

	h.reply(ctx, conn, req, result)
}

func (h *rpcMethodHandler) handleWorkFilter(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.WorkFilterParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}

	opts, err := work.ParseOrder(params.Order)
	if err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, err.Error())
		return
	}

	items := work.FilterAndSort(h.workStore.List(), params.Category, opts...)
	h.log.Debug("work filtered", "category", params.Category, "count", len(items))

	h.reply(ctx, conn, req, rpc.WorkFilterResult{
		Category: params.Category,
		Items:    items,
	})
}

func (h *rpcMethodHandler) handleWorkGet(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.WorkGetParams
	if err := requireParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}
	if params.ID == "" {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "id is required")
		return
	}

	cs, ok := h.library.CaseStudy(params.ID)
	if !ok {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "work not found")
		return
	}

	h.reply(ctx, conn, req, cs)
}

func (h *rpcMethodHandler) handleWorkListSubscribe(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.WorkListSubscribeParams
	if err := unmarshalParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}
	view, err := viewFor(params.Category, params.Order)
	if err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, err.Error())
		return
	}

	id, items := h.workWatcher.Subscribe(h.state.getNotifier(), view)
	h.state.trackSubscription(id, h.workWatcher)
	h.log.Debug("subscribed", "watcher", "work list", "watchId", id, "category", params.Category)

	h.reply(ctx, conn, req, rpc.WorkListSubscribeResult{ID: id, Items: items})
}

func (h *rpcMethodHandler) handleWorkListSelect(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params rpc.WorkListSelectParams
	if err := requireParams(req, &params); err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "invalid params")
		return
	}
	view, err := viewFor(params.Category, params.Order)
	if err != nil {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, err.Error())
		return
	}

	if !h.state.ownsSubscription(params.ID) {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "subscription not found")
		return
	}
	items, ok := h.workWatcher.SetView(params.ID, view)
	if !ok {
		h.replyError(ctx, conn, req.ID, jsonrpc2.CodeInvalidParams, "subscription not found")
		return
	}

	h.reply(ctx, conn, req, rpc.WorkListSelectResult{Items: items})
}

func viewFor(sel work.Selector, order string) (watch.View, error) {
	opts, err := work.ParseOrder(order)
	if err != nil {
		return watch.View{}, err
	}
	return watch.View{Selector: sel, DisplayOrdered: len(opts) > 0}, nil
}
