// Package form wraps a formstate.Store with dirty tracking and the prepare
// and submit lifecycle.
//
//	store, _ := formstate.New(ctx, tree)
//	ctrl, _ := form.New(store, func(ctx context.Context, data map[string]any) error {
//		return api.SaveProfile(ctx, data)
//	}, form.WithPrepare(loadDefaults))
//
//	_ = ctrl.Prepare(ctx)
//	outcome, err := ctrl.Submit(ctx)
//
// A form is dirty when any field differs from the snapshot, comparing
// values deeply and treating nil and "" as equal. Submit refuses invalid
// forms, silently skips pristine ones unless WithAllowPristineSubmit is
// set, and rejects a second call while one is running.
package form
