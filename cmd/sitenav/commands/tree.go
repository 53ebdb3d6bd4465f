package commands

import (
	stderrors "errors"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/site"
	"git.home.luguber.info/inful/sitenav/internal/treeview"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	File string `arg:"" help:"Site file to print"`
}

// Run executes the tree command.
func (t *TreeCmd) Run(g *Global) error {
	cfg, err := site.LoadFile(t.File)
	if err != nil {
		var decodeErr *site.DecodeError
		if stderrors.As(err, &decodeErr) {
			return errors.ValidationError("site file has shape problems").
				WithCause(decodeErr).
				WithContext("file", t.File).
				Build()
		}
		return err
	}
	if err := treeview.Render(g.out(), cfg); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write tree").Build()
	}
	return nil
}
