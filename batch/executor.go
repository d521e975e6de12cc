// Package batch applies a sequence of loosely-specified operations
// against the item service. References may be stable identifiers or
// human-readable titles; each operation succeeds or fails on its own
// and never stops the rest of the batch.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"todocore/dateparse"
	"todocore/service"
	"todocore/todo"
)

// Recognized action tags.
const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionMarkCompleted = "mark_completed"
	ActionList          = "list"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// minIDHyphens is the hyphen count above which a reference is assumed
// to be a UUID-shaped identifier rather than a title.
const minIDHyphens = 4

// Op is one operation descriptor: a tagged action plus parameters. For
// update, delete and mark_completed the reference may arrive under "id"
// or "title" and may be either an identifier or a display title. When
// the reference arrives under "title", that param is consumed as the
// lookup key, so an update cannot rename the item in the same
// operation; renaming requires referencing by "id".
type Op struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params"`
}

// Result pairs the original action tag with the outcome of applying it.
type Result struct {
	Action  string      `json:"action"`
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Item    *todo.Item  `json:"item,omitempty"`
	Items   []todo.Item `json:"items,omitempty"`
}

// Executor resolves references and applies operations through the
// service. It never returns a Go error for a per-operation failure;
// failures become error results in the output.
type Executor struct {
	service *service.ItemService
	now     func() time.Time
	logger  *slog.Logger
}

// New builds an Executor around the given service.
func New(svc *service.ItemService, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{service: svc, now: time.Now, logger: logger}
}

// Execute applies every operation in order and returns one result per
// operation plus the count of operations executed. Individual failures
// do not short-circuit the remaining operations.
func (e *Executor) Execute(ctx context.Context, ops []Op) ([]Result, int) {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		results = append(results, e.apply(ctx, op))
	}
	return results, len(results)
}

func (e *Executor) apply(ctx context.Context, op Op) Result {
	switch op.Action {
	case ActionCreate:
		return e.create(ctx, op)
	case ActionUpdate:
		return e.update(ctx, op)
	case ActionDelete:
		return e.delete(ctx, op)
	case ActionMarkCompleted:
		return e.markCompleted(ctx, op)
	case ActionList:
		return e.list(ctx, op)
	default:
		return Result{
			Action:  op.Action,
			Status:  StatusError,
			Message: fmt.Sprintf("unknown action %q", op.Action),
		}
	}
}

func (e *Executor) create(ctx context.Context, op Op) Result {
	title := stringParam(op.Params, "title")
	if title == "" {
		return errResult(op, "create requires a title")
	}
	dueDate := dateparse.Resolve(e.now(), stringParam(op.Params, "due_date"))

	item, err := e.service.Create(ctx, title, stringParam(op.Params, "description"), dueDate)
	if err != nil {
		if item == nil {
			return errResult(op, err.Error())
		}
		// Index-only failure: the item exists, report it with the error.
		e.logger.Warn("create committed with index failure", "id", item.ID, "error", err)
	}
	return Result{
		Action:  op.Action,
		Status:  StatusSuccess,
		Message: fmt.Sprintf("item %q created with due date %s", item.Title, item.DueDate),
		Item:    item,
	}
}

func (e *Executor) update(ctx context.Context, op Op) Result {
	id, fromIDParam, res := e.resolveRef(ctx, op)
	if res != nil {
		return *res
	}

	var fields todo.Fields
	// A "title" param is a new value only when the reference arrived
	// under "id"; otherwise it already served as the lookup key.
	if fromIDParam {
		if v := stringParam(op.Params, "title"); v != "" {
			fields.Title = &v
		}
	}
	if v := stringParam(op.Params, "description"); v != "" {
		fields.Description = &v
	}
	if v := stringParam(op.Params, "due_date"); v != "" {
		resolved := dateparse.Resolve(e.now(), v)
		fields.DueDate = &resolved
	}
	if fields.Empty() {
		return errResult(op, "no updatable fields supplied")
	}

	item, err := e.service.Update(ctx, id, fields)
	if err != nil && item == nil {
		return errResult(op, err.Error())
	}
	if item == nil {
		return errResult(op, fmt.Sprintf("item %s not found", id))
	}
	return Result{
		Action:  op.Action,
		Status:  StatusSuccess,
		Message: fmt.Sprintf("item %q updated", item.Title),
		Item:    item,
	}
}

func (e *Executor) delete(ctx context.Context, op Op) Result {
	id, _, res := e.resolveRef(ctx, op)
	if res != nil {
		return *res
	}

	deleted, err := e.service.Delete(ctx, id)
	if err != nil && !deleted {
		return errResult(op, err.Error())
	}
	if !deleted {
		return errResult(op, fmt.Sprintf("item %s not found", id))
	}
	return Result{
		Action:  op.Action,
		Status:  StatusSuccess,
		Message: fmt.Sprintf("item %s deleted", id),
	}
}

func (e *Executor) markCompleted(ctx context.Context, op Op) Result {
	id, _, res := e.resolveRef(ctx, op)
	if res != nil {
		return *res
	}

	item, err := e.service.MarkCompleted(ctx, id)
	if err != nil && item == nil {
		return errResult(op, err.Error())
	}
	if item == nil {
		return errResult(op, fmt.Sprintf("item %s not found", id))
	}
	return Result{
		Action:  op.Action,
		Status:  StatusSuccess,
		Message: fmt.Sprintf("item %q marked completed", item.Title),
		Item:    item,
	}
}

func (e *Executor) list(ctx context.Context, op Op) Result {
	items, err := e.service.GetAll(ctx)
	if err != nil {
		return errResult(op, err.Error())
	}
	return Result{
		Action:  op.Action,
		Status:  StatusSuccess,
		Message: fmt.Sprintf("%d items found", len(items)),
		Items:   items,
	}
}

// resolveRef turns the operation's reference parameter into an item ID.
// UUID-shaped strings (at least minIDHyphens hyphens) are taken as IDs
// directly; anything else is matched against item titles. The second
// return value reports whether the reference was read from the "id"
// param, regardless of its shape, so callers know the "title" param is
// still unconsumed. On failure the third return value carries the error
// result.
func (e *Executor) resolveRef(ctx context.Context, op Op) (string, bool, *Result) {
	ref := stringParam(op.Params, "id")
	fromIDParam := ref != ""
	if ref == "" {
		ref = stringParam(op.Params, "title")
	}
	if ref == "" {
		r := errResult(op, "operation requires an id or title reference")
		return "", false, &r
	}

	if strings.Count(ref, "-") >= minIDHyphens {
		return ref, fromIDParam, nil
	}

	id, err := e.resolveTitle(ctx, ref)
	if err != nil {
		r := errResult(op, err.Error())
		return "", false, &r
	}
	return id, fromIDParam, nil
}

func (e *Executor) resolveTitle(ctx context.Context, title string) (string, error) {
	items, err := e.service.GetAll(ctx)
	if err != nil {
		return "", err
	}

	needle := normalizeTitle(title)
	for _, item := range items {
		if normalizeTitle(item.Title) == needle {
			return item.ID, nil
		}
	}
	// Stored titles occasionally carry a percent-encoding artifact;
	// retry the comparison against the decoded form.
	for _, item := range items {
		if decoded, err := url.QueryUnescape(item.Title); err == nil {
			if normalizeTitle(decoded) == needle {
				return item.ID, nil
			}
		}
	}
	return "", fmt.Errorf("no item matches reference %q", title)
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func stringParam(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func errResult(op Op, message string) Result {
	return Result{Action: op.Action, Status: StatusError, Message: message}
}
