package identity

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirakextractor/internal/core/model"
)

// scriptedPrompter 按脚本回放操作员输入
type scriptedPrompter struct {
	confirm    bool
	confirmErr error
	inputs     []string
	printed    []string
	asked      int
}

func (p *scriptedPrompter) Confirm(string) (bool, error) {
	return p.confirm, p.confirmErr
}

func (p *scriptedPrompter) Input(string) (string, error) {
	if p.asked >= len(p.inputs) {
		return "", io.EOF
	}
	in := p.inputs[p.asked]
	p.asked++
	return in, nil
}

func (p *scriptedPrompter) Println(message string) {
	p.printed = append(p.printed, message)
}

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func TestResolve_FirstSourceWins(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/etc/os-release":  ubuntuOSRelease,
		"/etc/lsb-release": "DISTRIB_ID=Debian\nDISTRIB_RELEASE=12\n",
	})
	r := NewResolver(fs, nil, &scriptedPrompter{})

	res, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Product: "ubuntu", Version: "16.04", Source: SourceOSRelease}, res)
}

func TestResolve_FallsThroughBrokenSources(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/etc/os-release":  "NAME=Ubuntu\n",
		"/etc/lsb-release": "DISTRIB_ID=Ubuntu\n",
		"/etc/issue":       "Ubuntu 16.04.6 LTS \\n \\l\n",
	})

	var attempts []SourceKind
	var failures int
	r := NewResolver(fs, nil, &scriptedPrompter{})
	r.Observe = func(kind SourceKind, err error) {
		attempts = append(attempts, kind)
		if err != nil {
			failures++
		}
	}

	res, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Product: "ubuntu", Version: "16.04.6", Source: SourceIssue}, res)
	assert.Equal(t, []SourceKind{SourceOSRelease, SourceLSBRelease, SourceIssue}, attempts)
	assert.Equal(t, 2, failures)
}

func TestResolve_SkipsUnreadableSources(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/etc/issue": "Debian GNU/Linux 11 \\n \\l\n",
	})

	var attempts []SourceKind
	r := NewResolver(fs, nil, &scriptedPrompter{})
	r.Observe = func(kind SourceKind, _ error) { attempts = append(attempts, kind) }

	res, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "debian", res.Product)
	assert.Equal(t, []SourceKind{SourceIssue}, attempts)
}

func TestResolve_CustomOrder(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/etc/os-release":  ubuntuOSRelease,
		"/etc/lsb-release": "DISTRIB_ID=Ubuntu\nDISTRIB_RELEASE=16.04\n",
	})
	r := NewResolver(fs, []Source{
		{Kind: SourceLSBRelease, Path: "/etc/lsb-release"},
		{Kind: SourceOSRelease, Path: "/etc/os-release"},
	}, &scriptedPrompter{})

	res, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceLSBRelease, res.Source)
}

func TestResolve_ManualEntry(t *testing.T) {
	p := &scriptedPrompter{
		confirm: true,
		inputs:  []string{"7", "abc", "1", "8.x", "", "8.6"},
	}
	r := NewResolver(afero.NewMemMapFs(), nil, p)

	res, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Product: "enterprise", Version: "8.6", Source: SourceManual}, res)
	assert.Equal(t, 6, p.asked)
	assert.Contains(t, p.printed, distributorMenu)
}

func TestResolve_ManualMenu(t *testing.T) {
	for input, product := range map[string]string{"1": "enterprise", "2": "ubuntu", "3": "debian"} {
		p := &scriptedPrompter{confirm: true, inputs: []string{input, "10"}}
		res, err := NewResolver(afero.NewMemMapFs(), nil, p).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, product, res.Product)
		assert.Equal(t, "10", res.Version)
	}
}

func TestResolve_ManualDeclined(t *testing.T) {
	r := NewResolver(afero.NewMemMapFs(), nil, &scriptedPrompter{confirm: false})
	_, err := r.Resolve(context.Background())
	assert.ErrorIs(t, err, model.ErrUserCancelled)

	r = NewResolver(afero.NewMemMapFs(), nil, &scriptedPrompter{confirmErr: errors.New("interrupt")})
	_, err = r.Resolve(context.Background())
	assert.ErrorIs(t, err, model.ErrUserCancelled)
}

func TestResolve_ManualInputAborted(t *testing.T) {
	r := NewResolver(afero.NewMemMapFs(), nil, &scriptedPrompter{confirm: true, inputs: []string{"2"}})
	_, err := r.Resolve(context.Background())
	assert.ErrorIs(t, err, model.ErrUserCancelled)
}

func TestResolve_NonInteractive(t *testing.T) {
	p := &scriptedPrompter{confirm: true}
	r := NewResolver(afero.NewMemMapFs(), nil, p)
	r.Interactive = false

	_, err := r.Resolve(context.Background())
	assert.ErrorIs(t, err, model.ErrNoIdentitySource)
	assert.Empty(t, p.printed)
}

func TestVersionPattern(t *testing.T) {
	for _, v := range []string{"1", "1.0", "1.0.0", "22.04"} {
		assert.True(t, versionPattern.MatchString(v), v)
	}
	for _, v := range []string{"", "1.", "1.0.0.0", "v1", "1.a"} {
		assert.False(t, versionPattern.MatchString(v), v)
	}
}

func TestResolve_IssueFailureFallsThrough(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/etc/issue":      "Welcome\n",
		"/etc/os-release": ubuntuOSRelease,
	})
	var seen []SourceKind
	r := NewResolver(fs, []Source{
		{Kind: SourceIssue, Path: "/etc/issue"},
		{Kind: SourceOSRelease, Path: "/etc/os-release"},
	}, &scriptedPrompter{})
	r.Observe = func(kind SourceKind, err error) { seen = append(seen, kind) }

	res, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceOSRelease, res.Source)
	assert.Equal(t, []SourceKind{SourceIssue, SourceOSRelease}, seen)
}

func TestResolve_ManualEnterpriseGetsVendor(t *testing.T) {
	p := &scriptedPrompter{confirm: true, inputs: []string{"1", "8.6"}}
	res, err := NewResolver(afero.NewMemMapFs(), nil, p).Resolve(context.Background())
	require.NoError(t, err)

	h := NewHostIdentity(res.Product, res.Version, res.Source)
	assert.Equal(t, "redhat", h.Vendor)
	assert.Equal(t, "cpe:2.3:o:redhat:enterprise_linux:8.6:*:*:*:*:*:*:*", h.CPEName)
}
