package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirakextractor/internal/core/model"
)

type fakeRunner struct {
	out   map[string]string
	err   error
	calls []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.out[name]), nil
}

const dpkgOutput = `adduser|Debian Adduser Developers <adduser@packages.debian.org>|3.118ubuntu5|all
libc6:amd64|Ubuntu Developers <ubuntu-devel-discuss@lists.ubuntu.com>|2.35-0ubuntu3.1|amd64
python3|Ubuntu Developers <ubuntu-devel-discuss@lists.ubuntu.com>|3.10.6-1~22.04|amd64
routinator|NLnet Labs <routinator@nlnetlabs.nl>|0.13.2-1jammy|amd64
vim|Debian Vim Maintainers|2:8.2.3995-1ubuntu2|amd64
`

const rpmOutput = `bash    |Red Hat, Inc.|5.1.8    |x86_64
routinator|(none)|0.13.2|x86_64
python3|Red Hat, Inc.|3.9.16|x86_64
`

func TestDiscover_Debian(t *testing.T) {
	runner := &fakeRunner{out: map[string]string{dpkgQuery: dpkgOutput}}
	d := NewDiscoverer(runner)

	records, err := d.Discover(context.Background(), "ubuntu")
	require.NoError(t, err)
	assert.Equal(t, []string{dpkgQuery}, runner.calls)

	assert.Equal(t, [][]string{
		{"adduser", "ubuntu-tag_rec-app", "3.118ubuntu5", "all"},
		{"libc6", "ubuntu-tag_rec-app", "2.35-0ubuntu3.1", "amd64"},
		{"python", "python", "3.10.6-122.04", "amd64"},
		{"routinator", "nlnetlabs", "0.13.2-1jammy", "amd64"},
		{"vim", "ubuntu-tag_rec-app", "28.2.3995-1ubuntu2", "amd64"},
	}, records)
}

func TestDiscover_Enterprise(t *testing.T) {
	runner := &fakeRunner{out: map[string]string{rpmBinary: rpmOutput}}
	d := NewDiscoverer(runner)

	records, err := d.Discover(context.Background(), "enterprise")
	require.NoError(t, err)
	assert.Equal(t, []string{rpmBinary}, runner.calls)

	assert.Equal(t, [][]string{
		{"bash", "enterprise-tag_rec-app", "5.1.8", "x86_64"},
		{"routinator", "nlnetlabs", "0.13.2", "x86_64"},
		{"python", "python", "3.9.16", "x86_64"},
	}, records)
}

func TestDiscover_UnknownProduct(t *testing.T) {
	runner := &fakeRunner{}
	d := NewDiscoverer(runner)

	for _, product := range []string{"", "rhel", "fedora", "centos"} {
		records, err := d.Discover(context.Background(), product)
		require.NoError(t, err)
		assert.Empty(t, records)
	}
	assert.Empty(t, runner.calls)
}

func TestDiscover_RunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.Join(model.ErrCommandFailed, errors.New("not found"))}
	d := NewDiscoverer(runner)

	_, err := d.Discover(context.Background(), "debian")
	assert.ErrorIs(t, err, model.ErrCommandFailed)
}

func TestParseDpkg_KeepsMalformedLines(t *testing.T) {
	records := parseDpkg("pkg|maint|1.0|amd64|extra\nlonely\n\n")
	require.Len(t, records, 2)
	assert.Len(t, records[0], 5)
	assert.Equal(t, []string{"lonely"}, records[1])
}

func TestManagerFor(t *testing.T) {
	assert.Equal(t, ManagerRpm, ManagerFor("enterprise"))
	assert.Equal(t, ManagerDpkg, ManagerFor("ubuntu"))
	assert.Equal(t, ManagerDpkg, ManagerFor("debian"))
	assert.Equal(t, "", ManagerFor("arch"))
}
