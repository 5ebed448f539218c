package formkit

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formstate"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Form is a form controller bound to the store it manages.
type Form struct {
	*form.Controller
	store  *formstate.Store
	logger *slog.Logger
	binder []binder.Option
}

// FormOption configures a single Form.
type FormOption func(*formOptions)

type formOptions struct {
	store      []formstate.Option
	controller []form.Option
	binder     []binder.Option
}

// WithStoreOptions passes options to the underlying store.
func WithStoreOptions(opts ...formstate.Option) FormOption {
	return func(o *formOptions) {
		o.store = append(o.store, opts...)
	}
}

// WithControllerOptions passes options to the controller, for example a prepare hook.
func WithControllerOptions(opts ...form.Option) FormOption {
	return func(o *formOptions) {
		o.controller = append(o.controller, opts...)
	}
}

// WithBinderOptions sets request body limits used by Bind.
func WithBinderOptions(opts ...binder.Option) FormOption {
	return func(o *formOptions) {
		o.binder = append(o.binder, opts...)
	}
}

// NewForm creates a store over tree and a controller submitting through submit.
// Kit settings apply first, so FormOptions override them.
func (k *Kit) NewForm(ctx context.Context, tree formstate.Tree, submit form.SubmitFunc, opts ...FormOption) (*Form, error) {
	var o formOptions
	for _, opt := range opts {
		opt(&o)
	}

	storeOpts := []formstate.Option{formstate.WithLogger(k.logger)}
	if k.cfg.SyncValidation {
		storeOpts = append(storeOpts, formstate.WithSyncValidation())
	}
	store, err := formstate.New(ctx, tree, append(storeOpts, o.store...)...)
	if err != nil {
		return nil, err
	}

	ctrlOpts := []form.Option{
		form.WithLogger(k.logger),
		form.WithAllowPristineSubmit(k.cfg.AllowPristineSubmit),
	}
	ctrl, err := form.New(store, submit, append(ctrlOpts, o.controller...)...)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &Form{Controller: ctrl, store: store, logger: k.logger, binder: o.binder}, nil
}

// Bind reads the body of r and assigns the fields it names. Names the form
// does not declare are ignored.
func (f *Form) Bind(r *http.Request) error {
	data, err := binder.Request(r, f.binder...)
	if err != nil {
		return err
	}
	return f.SetData(r.Context(), data)
}

// SetData assigns the known fields of data through their set hooks.
func (f *Form) SetData(ctx context.Context, data map[string]any) error {
	leaves := make(map[string]bool)
	branches := make(map[string]bool)
	for _, key := range f.store.Keys() {
		leaves[key] = true
		segments := strings.Split(key, formstate.Separator)
		for i := 1; i < len(segments); i++ {
			branches[formstate.Join(segments[:i]...)] = true
		}
	}

	var dropped []string
	known := filterKnown(data, "", leaves, branches, &dropped)
	if len(dropped) > 0 {
		slices.Sort(dropped)
		f.logger.DebugContext(ctx, "ignored undeclared fields", logger.FieldKeys(dropped))
	}
	return f.store.SetData(ctx, known)
}

func filterKnown(data map[string]any, prefix string, leaves, branches map[string]bool, dropped *[]string) map[string]any {
	out := make(map[string]any, len(data))
	for name, v := range data {
		key := prefix + name
		switch {
		case leaves[key]:
			out[name] = v
		case branches[key]:
			child, ok := v.(map[string]any)
			if !ok {
				// wrong shape, let the store report it
				out[name] = v
				continue
			}
			out[name] = filterKnown(child, key+formstate.Separator, leaves, branches, dropped)
		default:
			*dropped = append(*dropped, key)
		}
	}
	return out
}

// ValidationError returns the visible field errors, or nil when there are none.
func (f *Form) ValidationError() error {
	ve := ValidationErrorOf(f.store)
	if ve.IsEmpty() {
		return nil
	}
	return ve
}

// Close detaches the controller and stops the store.
func (f *Form) Close() {
	f.Controller.Close()
	f.store.Close()
}
