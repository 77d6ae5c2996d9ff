package printview

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	p := &Printer{Dir: dir}

	for _, f := range []Format{FormatPDF, FormatXLSX} {
		t.Run(string(f), func(t *testing.T) {
			path, err := p.Export(context.Background(), demoDocument(t), f)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "offert-31."+string(f)), path)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestPrintWithoutCommand(t *testing.T) {
	p := &Printer{Dir: t.TempDir()}
	res, err := p.Print(context.Background(), demoDocument(t))
	require.NoError(t, err)
	assert.False(t, res.Printed)
	assert.FileExists(t, res.Path)
}

func TestPrintCommand(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true(1) not available")
	}
	p := &Printer{Dir: t.TempDir(), Command: "true -o fit-to-page"}
	res, err := p.Print(context.Background(), demoDocument(t))
	require.NoError(t, err)
	assert.True(t, res.Printed)
}

func TestPrintCommandFails(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false(1) not available")
	}
	p := &Printer{Dir: t.TempDir(), Command: "false"}
	res, err := p.Print(context.Background(), demoDocument(t))
	require.Error(t, err)
	assert.False(t, res.Printed)
	assert.FileExists(t, res.Path, "the PDF is kept when printing fails")
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Printer{Dir: t.TempDir()}).Export(ctx, demoDocument(t), FormatPDF)
	assert.ErrorIs(t, err, context.Canceled)
}
