package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tzmap/cmd/tzmap/commands"
	"go.trai.ch/tzmap/internal/app"
	"go.trai.ch/tzmap/internal/build"
	"go.trai.ch/tzmap/internal/core/domain"
)

type mockApp struct {
	opts      app.Options
	json      bool
	verbose   bool
	mapFunc   func(ids []string) ([]app.MapResult, error)
	idsFunc   func() ([]string, error)
	zonesFunc func() ([]*domain.Zone, error)
	infoFunc  func() (*app.Info, error)
	warmFunc  func() error
	cacheFunc func() (*app.CacheStatus, error)
}

func (m *mockApp) Map(_ context.Context, opts app.Options, ids []string) ([]app.MapResult, error) {
	m.opts = opts
	return m.mapFunc(ids)
}

func (m *mockApp) IDs(_ context.Context, opts app.Options) ([]string, error) {
	m.opts = opts
	return m.idsFunc()
}

func (m *mockApp) Zones(_ context.Context, opts app.Options) ([]*domain.Zone, error) {
	m.opts = opts
	return m.zonesFunc()
}

func (m *mockApp) Info(_ context.Context, opts app.Options) (*app.Info, error) {
	m.opts = opts
	return m.infoFunc()
}

func (m *mockApp) Warm(_ context.Context, opts app.Options) error {
	m.opts = opts
	return m.warmFunc()
}

func (m *mockApp) Cache(_ context.Context, opts app.Options) (*app.CacheStatus, error) {
	m.opts = opts
	return m.cacheFunc()
}

func (m *mockApp) ConfigureLogging(jsonOutput, verbose bool) {
	m.json = jsonOutput
	m.verbose = verbose
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	cli.SetArgs(args)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Map(t *testing.T) {
	t.Run("prints mappings and wires flags", func(t *testing.T) {
		mock := &mockApp{mapFunc: func(ids []string) ([]app.MapResult, error) {
			assert.Equal(t, []string{"Europe/Amsterdam"}, ids)
			return []app.MapResult{{
				TZID: "Europe/Amsterdam",
				Zone: &domain.Zone{ID: "W. Europe Standard Time", Location: time.UTC},
			}}, nil
		}}

		out, err := execute(t, mock, "map", "Europe/Amsterdam", "--source", "online", "--config", "x.yaml", "--json", "--verbose")
		require.NoError(t, err)
		assert.Equal(t, "Europe/Amsterdam -> W. Europe Standard Time (UTC)\n", out)
		assert.Equal(t, app.Options{ConfigPath: "x.yaml", Source: "online"}, mock.opts)
		assert.True(t, mock.json)
		assert.True(t, mock.verbose)
	})

	t.Run("reports unmapped ids", func(t *testing.T) {
		unmapped := errors.Join(domain.ErrUnmappedIDs)
		mock := &mockApp{mapFunc: func([]string) ([]app.MapResult, error) {
			return []app.MapResult{{TZID: "Mars/Olympus"}}, unmapped
		}}

		out, err := execute(t, mock, "map", "Mars/Olympus", "-f", "zones.xml")
		require.ErrorIs(t, err, domain.ErrUnmappedIDs)
		assert.Contains(t, out, "Mars/Olympus -> (unmapped)")
		assert.Equal(t, "zones.xml", mock.opts.File)
	})

	t.Run("requires an id", func(t *testing.T) {
		mock := &mockApp{mapFunc: func([]string) ([]app.MapResult, error) {
			panic("should not be called")
		}}
		_, err := execute(t, mock, "map")
		require.Error(t, err)
	})
}

func TestCommands_IDsAndZones(t *testing.T) {
	mock := &mockApp{
		idsFunc: func() ([]string, error) {
			return []string{"America/Anchorage", "America/Juneau"}, nil
		},
		zonesFunc: func() ([]*domain.Zone, error) {
			return []*domain.Zone{{ID: "UTC", Location: time.UTC}}, nil
		},
	}

	out, err := execute(t, mock, "ids")
	require.NoError(t, err)
	assert.Equal(t, "America/Anchorage\nAmerica/Juneau\n", out)

	out, err = execute(t, mock, "zones")
	require.NoError(t, err)
	assert.Equal(t, "UTC\tUTC\n", out)
}

func TestCommands_Info(t *testing.T) {
	mock := &mockApp{infoFunc: func() (*app.Info, error) {
		return &app.Info{
			Source: "static", Version: "2021a.7e11800", TZIDVersion: "2021a",
			PlatformVersion: "7e11800", Digest: "00ff", IDs: 3, Zones: 2,
		}, nil
	}}

	out, err := execute(t, mock, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "2021a.7e11800")
	assert.Contains(t, out, "digest:")
	assert.Contains(t, out, "00ff")
}

func TestCommands_Warm(t *testing.T) {
	mock := &mockApp{warmFunc: func() error { return errors.New("simulated error") }}

	_, err := execute(t, mock, "warm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_Cache(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		mock := &mockApp{cacheFunc: func() (*app.CacheStatus, error) {
			return &app.CacheStatus{URI: "https://example.test/windowsZones.xml", Path: "/tmp/windowsZones.xml"}, nil
		}}
		out, err := execute(t, mock, "cache")
		require.NoError(t, err)
		assert.Contains(t, out, "state: missing")
	})

	t.Run("fresh", func(t *testing.T) {
		mock := &mockApp{cacheFunc: func() (*app.CacheStatus, error) {
			return &app.CacheStatus{Present: true, Fresh: true, Age: time.Minute, TTL: time.Hour}, nil
		}}
		out, err := execute(t, mock, "cache")
		require.NoError(t, err)
		assert.Contains(t, out, "state: fresh (age 1m0s, ttl 1h0m0s)")
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "tzmap version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_VersionFlag(t *testing.T) {
	want := "tzmap version " + build.Version + " (commit: " + build.Commit + ", date: " + build.Date + ")\n"

	for _, flag := range []string{"--version", "-v"} {
		t.Run(flag, func(t *testing.T) {
			var (
				out string
				err error
			)
			require.NotPanics(t, func() { out, err = execute(t, &mockApp{}, flag) })
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}
}
