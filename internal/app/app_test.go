package app_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tzmap/internal/adapters/platform"
	"go.trai.ch/tzmap/internal/adapters/telemetry"
	"go.trai.ch/tzmap/internal/adapters/telemetry/progrock"
	"go.trai.ch/tzmap/internal/app"
	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const onlineDoc = `<supplementalData><windowsZones>
<mapTimezones otherVersion="online" typeVersion="2099a">
	<mapZone other="Tokyo Standard Time" territory="JP" type="Asia/Tokyo"/>
	<mapZone other="Nowhere Standard Time" territory="ZZ" type="Etc/Nowhere"/>
</mapTimezones>
</windowsZones></supplementalData>`

type fixture struct {
	app    *app.App
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
	cfg    *domain.Config
	hits   *atomic.Int32
}

func newFixture(t *testing.T, status int) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(onlineDoc))
	}))
	t.Cleanup(srv.Close)

	cfg := &domain.Config{
		Source: domain.SourceStatic,
		Options: domain.Options{
			ResourceURI:    srv.URL + "/windowsZones.xml",
			CacheDirectory: t.TempDir(),
		},
	}

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any(), gomock.Any()).DoAndReturn(func(string, string) (*domain.Config, error) {
		c := *cfg
		return &c, nil
	}).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	resolver, err := platform.New()
	require.NoError(t, err)

	return &fixture{
		app:    app.New(loader, logger, resolver, telemetry.NewNoop()),
		loader: loader,
		logger: logger,
		cfg:    cfg,
		hits:   &hits,
	}
}

func TestApp_Map(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	results, err := f.app.Map(context.Background(), app.Options{}, []string{"europe/amsterdam", "Etc/GMT"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "W. Europe Standard Time", results[0].Zone.ID)
	assert.Equal(t, "UTC", results[1].Zone.ID)
	assert.Equal(t, int32(0), f.hits.Load())
}

func TestApp_Map_Unmapped(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	results, err := f.app.Map(context.Background(), app.Options{}, []string{"Europe/Amsterdam", "Mars/Olympus"})
	require.ErrorIs(t, err, domain.ErrUnmappedIDs)
	assert.True(t, app.IsUnmapped(err))
	require.Len(t, results, 2)
	assert.True(t, results[0].Found())
	assert.False(t, results[1].Found())
}

func TestApp_Online(t *testing.T) {
	f := newFixture(t, http.StatusOK)
	opts := app.Options{Source: domain.SourceOnline}

	info, err := f.app.Info(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceOnline, info.Source)
	assert.Equal(t, "2099a.online", info.Version)
	// The unresolvable candidate is dropped under the lenient default.
	assert.Equal(t, 1, info.IDs)
	assert.Equal(t, 1, info.Zones)

	// A second invocation is served from the cache.
	ids, err := f.app.IDs(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Asia/Tokyo"}, ids)
	assert.Equal(t, int32(1), f.hits.Load())
}

func TestApp_Fallback(t *testing.T) {
	f := newFixture(t, http.StatusInternalServerError)
	f.logger.EXPECT().Warn(gomock.Any()).Times(1)

	info, err := f.app.Info(context.Background(), app.Options{Source: domain.SourceFallback})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStatic, info.Source)
	assert.Equal(t, "2021a.7e11800", info.Version)
}

func TestApp_File(t *testing.T) {
	f := newFixture(t, http.StatusOK)
	path := filepath.Join(t.TempDir(), "zones.xml")
	require.NoError(t, os.WriteFile(path, []byte(onlineDoc), domain.FilePerm))

	zones, err := f.app.Zones(context.Background(), app.Options{File: path})
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "Tokyo Standard Time", zones[0].ID)

	_, err = f.app.Zones(context.Background(), app.Options{File: filepath.Join(t.TempDir(), "missing.xml")})
	require.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = f.app.Zones(context.Background(), app.Options{Source: domain.SourceFile})
	require.ErrorIs(t, err, domain.ErrMissingSourceFile)
}

func TestApp_UnknownSource(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	_, err := f.app.IDs(context.Background(), app.Options{Source: "carrier-pigeon"})
	require.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestApp_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("broken.yaml", gomock.Any()).Return(nil, domain.ErrConfigParseFailed)
	logger := mocks.NewMockLogger(ctrl)

	a := app.New(loader, logger, mocks.NewMockZoneResolver(ctrl), telemetry.NewNoop())
	_, err := a.IDs(context.Background(), app.Options{ConfigPath: "broken.yaml"})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_WarmAndCache(t *testing.T) {
	f := newFixture(t, http.StatusOK)
	now := time.Now()
	f.app.WithClock(func() time.Time { return now })

	status, err := f.app.Cache(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.False(t, status.Present)
	assert.Equal(t, filepath.Join(f.cfg.Options.CacheDirectory, "windowsZones.xml"), status.Path)
	assert.Equal(t, domain.DefaultCacheTTL, status.TTL)

	require.NoError(t, f.app.Warm(context.Background(), app.Options{}))
	assert.Equal(t, int32(1), f.hits.Load())

	status, err = f.app.Cache(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.True(t, status.Present)
	assert.True(t, status.Fresh)
}

func TestApp_WarmFailure(t *testing.T) {
	f := newFixture(t, http.StatusNotFound)

	err := f.app.Warm(context.Background(), app.Options{})
	require.ErrorIs(t, err, domain.ErrFetchFailed)
}

type configurableLogger struct {
	*mocks.MockLogger
	json  bool
	level domain.LogLevel
}

func (l *configurableLogger) SetJSON(enable bool)            { l.json = enable }
func (l *configurableLogger) SetLevel(level domain.LogLevel) { l.level = level }

func TestApp_ConfigureLogging(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := &configurableLogger{MockLogger: mocks.NewMockLogger(ctrl), level: domain.LogLevelInfo}

	a := app.New(mocks.NewMockConfigLoader(ctrl), log, mocks.NewMockZoneResolver(ctrl), telemetry.NewNoop())
	a.ConfigureLogging(true, true)

	assert.True(t, log.json)
	assert.Equal(t, domain.LogLevelDebug, log.level)
}

func TestApp_VerboseReportsCacheHit(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	var buf bytes.Buffer
	recorder := progrock.NewRecorder(progrock.NewReporter(&buf))
	a := app.New(f.loader, f.logger, platformResolver(t), recorder)
	a.ConfigureLogging(false, true)

	opts := app.Options{Source: domain.SourceOnline}
	for range 2 {
		_, err := a.Map(context.Background(), opts, []string{"Asia/Tokyo"})
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), f.hits.Load())
	assert.Contains(t, buf.String(), "[cached] fetch "+f.cfg.Options.ResourceURI+"\n")
	assert.Contains(t, buf.String(), "] build mapper (online)\n")
}

func platformResolver(t *testing.T) *platform.Resolver {
	t.Helper()
	resolver, err := platform.New()
	require.NoError(t, err)
	return resolver
}
