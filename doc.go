// Package formkit wires the formkit libraries into ready-to-use forms.
//
// The building blocks live under pkg/: rules evaluates validation rule sets,
// formstate holds field values and verdicts, form adds dirty tracking and the
// submit lifecycle, transform supplies set/get hooks, and binder reads HTTP
// bodies. A Kit combines them from a single Config:
//
//	cfg, err := formkit.LoadConfig()
//	if err != nil {
//		return err
//	}
//	kit, err := formkit.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	f, err := kit.NewForm(ctx, formstate.Tree{
//		"email": &formstate.Field{
//			Value:    "",
//			Set:      transform.String(transform.Trim, transform.NormalizeEmail),
//			Validate: kit.Rules(rules.Required(), rules.Email()),
//		},
//		"password": formstate.Validated("", kit.Rules(rules.Required(), rules.MinLength(8))),
//	}, func(ctx context.Context, data map[string]any) error {
//		var in SignupInput
//		if err := formkit.Decode(data, &in); err != nil {
//			return err
//		}
//		return signup(ctx, in)
//	})
//
// Forms accept request bodies through Bind and report failed fields as a
// ValidationError:
//
//	if err := f.Bind(r); err != nil {
//		return err
//	}
//	outcome, err := f.Submit(r.Context())
//	if outcome == form.OutcomeInvalid {
//		return f.ValidationError()
//	}
//
// Configuration comes from FORMKIT_* environment variables (see Config).
package formkit
