package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formstate"
	"github.com/dmitrymomot/formkit/pkg/rules"
	"github.com/dmitrymomot/formkit/pkg/transform"
)

type signupInput struct {
	Email    string    `form:"email" json:"email"`
	Name     string    `form:"name" json:"name"`
	Password string    `form:"password" json:"-"`
	Age      int       `form:"age" json:"age"`
	Birthday time.Time `form:"birthday" json:"birthday"`
	Website  string    `form:"website" json:"website,omitempty"`
	Bio      string    `form:"bio" json:"bio,omitempty"`
	Address  struct {
		City    string `form:"city" json:"city"`
		Country string `form:"country" json:"country"`
	} `form:"address" json:"address"`
	Tags []string `form:"tags" json:"tags,omitempty"`
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Fill and submit the signup form",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if sync, _ := cmd.Flags().GetBool("sync"); sync {
			cfg.SyncValidation = true
		}

		ctx := cmd.Context()
		kit, err := formkit.New(ctx, cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		f, err := kit.NewForm(ctx, signupTree(kit), printSubmission(out))
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := signupData(cmd)
		if err != nil {
			return err
		}
		if err := f.SetData(ctx, data); err != nil {
			return err
		}
		if err := f.Store().Settle(ctx); err != nil {
			return err
		}

		outcome, err := f.Submit(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "outcome: %s\n", outcome)
		if outcome == form.OutcomeInvalid {
			ve := formkit.ValidationErrorOf(f.Store())
			for _, field := range ve.Fields() {
				fmt.Fprintf(out, "  %s: %s\n", field, ve.Get(field))
			}
			return ve
		}
		return nil
	},
}

func init() {
	flags := signupCmd.Flags()
	flags.String("email", "", "email address")
	flags.String("name", "", "display name")
	flags.String("password", "", "password, at least 8 characters")
	flags.String("age", "", "age in years, 18 to 120")
	flags.String("birthday", "", "birthday as YYYY-MM-DD")
	flags.String("website", "", "personal website URL")
	flags.String("bio", "", "short bio, HTML is stripped")
	flags.String("city", "", "address city")
	flags.String("country", "", "address country code")
	flags.String("tags", "", "comma separated interests")
	flags.Bool("sync", false, "validate changed fields inline (overrides FORMKIT_SYNC_VALIDATION)")
	rootCmd.AddCommand(signupCmd)
}

func signupTree(kit *formkit.Kit) formstate.Tree {
	return formstate.Tree{
		"email": &formstate.Field{
			Value:    "",
			Set:      transform.String(transform.Trim, transform.NormalizeEmail),
			Validate: kit.Rules(rules.Required(), rules.Email()),
		},
		"name": &formstate.Field{
			Value:    "",
			Set:      transform.String(transform.RemoveControlChars, transform.NormalizeWhitespace),
			Validate: kit.Rules(rules.Required(), rules.MaxLength(64)),
		},
		"password": formstate.Validated("", kit.Rules(rules.Required(), rules.MinLength(8))),
		"age": &formstate.Field{
			Set:      transform.Int,
			Validate: kit.Rules(rules.Required(), rules.Min(18), rules.Max(120)),
		},
		"birthday": &formstate.Field{
			Set:      transform.Date(rules.DateLayout),
			Validate: kit.Rules(rules.MaxDate(time.Now())),
		},
		"website": &formstate.Field{
			Value:    "",
			Set:      transform.String(transform.Trim),
			Get:      transform.NilIfEmpty,
			Validate: kit.Rules(rules.URL()),
		},
		"bio": &formstate.Field{
			Value:    "",
			Set:      transform.String(transform.StripHTML, transform.Trim),
			Validate: kit.Rules(rules.MaxLength(280)),
		},
		"address": formstate.Tree{
			"city":    formstate.Validated("", kit.Rules(rules.Required())),
			"country": &formstate.Field{Value: "", Set: transform.String(transform.Trim, transform.ToUpper)},
		},
		"tags": &formstate.Field{
			Value:    []string{},
			Set:      transform.List(","),
			Validate: kit.Rules(rules.MaxLength(5)),
		},
	}
}

// signupData maps the flags that were set onto the form shape.
func signupData(cmd *cobra.Command) (map[string]any, error) {
	flat := make(map[string]any)
	for flag, key := range map[string]string{
		"email":    "email",
		"name":     "name",
		"password": "password",
		"age":      "age",
		"birthday": "birthday",
		"website":  "website",
		"bio":      "bio",
		"city":     formstate.Join("address", "city"),
		"country":  formstate.Join("address", "country"),
		"tags":     "tags",
	} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		v, err := cmd.Flags().GetString(flag)
		if err != nil {
			return nil, err
		}
		flat[key] = v
	}
	return formstate.Unflatten(flat)
}

func printSubmission(w io.Writer) form.SubmitFunc {
	return func(_ context.Context, data map[string]any) error {
		var in signupInput
		if err := formkit.Decode(data, &in); err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(in)
	}
}
