package core

import (
	"context"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/hook"
	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// ViolationType classifies a mismatch found by Check.
type ViolationType string

const (
	ViolationOwner        ViolationType = "owner"
	ViolationDefaultISM   ViolationType = "defaultIsm"
	ViolationDefaultHook  ViolationType = "defaultHook"
	ViolationRequiredHook ViolationType = "requiredHook"
)

// Violation is one difference between the expected config and chain state.
type Violation struct {
	Type     ViolationType
	Expected string
	Actual   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", v.Type, v.Expected, v.Actual)
}

// Checker derives the live core config of a chain and diffs it against an
// expected config.
type Checker struct {
	reader Reader
}

func NewChecker(reader Reader) *Checker {
	return &Checker{reader: reader}
}

// Check returns the violations of the mailbox at addr against expected. An
// empty slice means the deployment matches.
func (c *Checker) Check(ctx context.Context, mailbox types.Address, expected Config) ([]Violation, error) {
	if err := expected.Validate(); err != nil {
		return nil, err
	}

	state, err := c.reader.Mailbox(ctx, mailbox)
	if err != nil {
		return nil, fmt.Errorf("read mailbox %s: %w", mailbox, err)
	}

	var violations []Violation

	wantOwner, err := types.ParseAddress(expected.Owner)
	if err != nil {
		return nil, fmt.Errorf("expected owner: %w", err)
	}
	if state.Owner != wantOwner {
		violations = append(violations, Violation{
			Type:     ViolationOwner,
			Expected: wantOwner.String(),
			Actual:   state.Owner.String(),
		})
	}

	gotISM, err := ism.NewDeriver(c.reader.ISMReader()).Derive(ctx, state.DefaultISM)
	if err != nil {
		return nil, fmt.Errorf("derive default ism: %w", err)
	}
	if !ism.Equal(gotISM, expected.DefaultISM.Config) {
		violations = append(violations, Violation{
			Type:     ViolationDefaultISM,
			Expected: string(expected.DefaultISM.Config.ConfigType()),
			Actual:   string(gotISM.ConfigType()),
		})
	}

	for _, h := range []struct {
		vtype ViolationType
		addr  types.Address
		want  hook.Config
	}{
		{ViolationDefaultHook, state.DefaultHook, expected.DefaultHook.Config},
		{ViolationRequiredHook, state.RequiredHook, expected.RequiredHook.Config},
	} {
		got, err := hook.NewDeriver(c.reader.HookReader()).Derive(ctx, h.addr)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", h.vtype, err)
		}
		if !hook.Equal(got, h.want) {
			violations = append(violations, Violation{
				Type:     h.vtype,
				Expected: string(h.want.HookType()),
				Actual:   string(got.HookType()),
			})
		}
	}

	return violations, nil
}
