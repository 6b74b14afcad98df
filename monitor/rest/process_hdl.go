package rest

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/pkg/errors"
)

type QueryProcessesRequest struct {
	Filter *domain.Filter   `json:"filter,omitempty"`
	Sort   *domain.SortSpec `json:"sort,omitempty"`
}

type TerminateRequest struct {
	Mode domain.KillMode `json:"mode"`
}

type TerminateResponse struct {
	PID  uint32          `json:"pid"`
	Mode domain.KillMode `json:"mode"`
}

// QueryProcesses lists processes with filter and sort taken from the body.
func (h *Handler) QueryProcesses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req QueryProcessesRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, ErrTypeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.listProcesses(w, r, req.Filter, req.Sort)
}

// ListProcesses lists processes with filter and sort taken from the query
// string, e.g. ?search=chrome&mine_only=true&sort=memory_bytes:desc.
func (h *Handler) ListProcesses(w http.ResponseWriter, r *http.Request) {
	filter, sort, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.ErrorResponse(r.Context(), w, http.StatusBadRequest, ErrTypeBadRequest, err.Error())
		return
	}
	h.listProcesses(w, r, filter, sort)
}

func (h *Handler) listProcesses(w http.ResponseWriter, r *http.Request, filter *domain.Filter, sort *domain.SortSpec) {
	ctx := r.Context()
	processes, err := h.Svc.ListProcesses(ctx, filter, sort)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.SuccessResponse(ctx, w, processes)
}

func parseListQuery(q url.Values) (*domain.Filter, *domain.SortSpec, error) {
	var f domain.Filter
	set := false
	if v := q.Get("search"); v != "" {
		f.Search, set = &v, true
	}
	if v := q.Get("user"); v != "" {
		f.User, set = &v, true
	}
	for key, dst := range map[string]**bool{
		"mine_only":       &f.MineOnly,
		"system_only":     &f.SystemOnly,
		"non_system_only": &f.NonSystemOnly,
	} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, nil, errors.Errorf("invalid %s: %q", key, v)
		}
		*dst, set = &b, true
	}
	if v := q.Get("status"); v != "" {
		st, ok := domain.ParseStatus(v)
		if !ok {
			return nil, nil, errors.Errorf("invalid status: %q", v)
		}
		f.Status, set = &st, true
	}
	if v := q.Get("cpu_gt"); v != "" {
		cpu, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, errors.Errorf("invalid cpu_gt: %q", v)
		}
		f.CPUGt, set = &cpu, true
	}
	if v := q.Get("memory_gt_bytes"); v != "" {
		mem, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, nil, errors.Errorf("invalid memory_gt_bytes: %q", v)
		}
		f.MemoryGtBytes, set = &mem, true
	}

	var filter *domain.Filter
	if set {
		filter = &f
	}
	var sort *domain.SortSpec
	if v := q.Get("sort"); v != "" {
		spec, err := domain.ParseSortSpec(v)
		if err != nil {
			return nil, nil, err
		}
		sort = &spec
	}
	return filter, sort, nil
}

func (h *Handler) pidParam(w http.ResponseWriter, r *http.Request) (uint32, bool) {
	raw := h.GetPathParam(r, "pid")
	pid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		h.ErrorResponse(r.Context(), w, http.StatusBadRequest, ErrTypeBadRequest, "Invalid pid: "+strconv.Quote(raw))
		return 0, false
	}
	return uint32(pid), true
}

func (h *Handler) GetProcessDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pid, ok := h.pidParam(w, r)
	if !ok {
		return
	}
	details, err := h.Svc.ProcessDetails(ctx, pid)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.SuccessResponse(ctx, w, details)
}

func (h *Handler) TerminateProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pid, ok := h.pidParam(w, r)
	if !ok {
		return
	}
	var req TerminateRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, ErrTypeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	mode, ok := domain.ParseKillMode(string(req.Mode))
	if !ok {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, ErrTypeBadRequest, "Invalid mode: "+strconv.Quote(string(req.Mode)))
		return
	}
	if err := h.Svc.Terminate(ctx, pid, mode); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.SuccessResponse(ctx, w, TerminateResponse{PID: pid, Mode: mode})
}

func (h *Handler) OpenContainingFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pid, ok := h.pidParam(w, r)
	if !ok {
		return
	}
	if err := h.Svc.OpenContainingFolder(ctx, pid); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.SuccessResponse(ctx, w, nil)
}
