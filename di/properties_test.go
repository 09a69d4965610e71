package di

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// MapProperties
// -----------------------------------------------------------------------------

// TestNewMapProperties_Empty verifies NewMapProperties initializes an empty map.
func TestNewMapProperties_Empty(t *testing.T) {
	t.Parallel()

	p := NewMapProperties()
	require.NotNil(t, p)
	require.NotNil(t, p.items)
	assert.Len(t, p.items, 0)
}

// TestProvide_ChainsAndStores verifies Provide stores values and returns the same source.
func TestProvide_ChainsAndStores(t *testing.T) {
	t.Parallel()

	p := NewMapProperties()
	ret := p.Provide("user.db_type", "MySQL").Provide("notification.port", 587)
	require.Same(t, p, ret)

	got, ok, err := p.Resolve("notification.port")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 587, got)
}

// TestMapResolve_PresentAndMissing verifies Resolve reports presence without errors.
func TestMapResolve_PresentAndMissing(t *testing.T) {
	t.Parallel()

	p := NewMapProperties().Provide("k", "v")

	val, ok, err := p.Resolve("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", val)

	val, ok, err = p.Resolve("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
}

// TestMapResolve_RecoversFromPanic triggers a panic via a nil receiver.
func TestMapResolve_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	var p *MapProperties

	val, ok, err := p.Resolve("k")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.True(t, errors.Is(err, ErrPropertyPanic))
}

//
// -----------------------------------------------------------------------------
// Typed helpers
// -----------------------------------------------------------------------------

func TestStringProperty(t *testing.T) {
	t.Parallel()

	p := NewMapProperties().Provide("user.db_type", "PostgreSQL").Provide("n", 7)

	got, err := StringProperty(p, "user.db_type", "MySQL")
	require.NoError(t, err)
	assert.Equal(t, "PostgreSQL", got)

	got, err = StringProperty(p, "missing", "MySQL")
	require.NoError(t, err)
	assert.Equal(t, "MySQL", got)

	got, err = StringProperty(nil, "user.db_type", "MySQL")
	require.NoError(t, err)
	assert.Equal(t, "MySQL", got)

	got, err = StringProperty(p, "n", "")
	require.NoError(t, err)
	assert.Equal(t, "7", got)
}

func TestIntProperty(t *testing.T) {
	t.Parallel()

	p := NewMapProperties().Provide("port", "2525").Provide("bad", "abc")

	got, err := IntProperty(p, "port", 587)
	require.NoError(t, err)
	assert.Equal(t, 2525, got)

	got, err = IntProperty(p, "missing", 587)
	require.NoError(t, err)
	assert.Equal(t, 587, got)

	got, err = IntProperty(p, "bad", 587)
	var we WrongTypeDependencyError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, DependencyKey("bad"), we.Key)
	assert.Equal(t, "string", we.GotType)
	assert.Equal(t, 587, got)
}

func TestStringsProperty(t *testing.T) {
	t.Parallel()

	p := NewMapProperties().
		Provide("list", []any{"Java", "SpringFW"}).
		Provide("strings", []string{"fx", "dig"}).
		Provide("csv", "Go, fx ,viper").
		Provide("blank", "  ").
		Provide("int", 42).
		Provide("map", map[string]any{"a": "b"})

	def := []string{"a"}

	testCases := []struct {
		key      string
		want     []string
		wantType string
	}{
		{key: "list", want: []string{"Java", "SpringFW"}},
		{key: "strings", want: []string{"fx", "dig"}},
		{key: "csv", want: []string{"Go", "fx", "viper"}},
		{key: "blank", want: []string{}},
		{key: "missing", want: def},
		{key: "int", want: def, wantType: "int"},
		{key: "map", want: def, wantType: "map[string]interface {}"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.key, func(t *testing.T) {
			t.Parallel()

			got, err := StringsProperty(p, tc.key, def)
			assert.Equal(t, tc.want, got)
			if tc.wantType == "" {
				require.NoError(t, err)
				return
			}
			var we WrongTypeDependencyError
			require.True(t, errors.As(err, &we))
			assert.Equal(t, DependencyKey(tc.key), we.Key)
			assert.Equal(t, tc.wantType, we.GotType)
		})
	}
}

func TestHelpers_PropagateResolveError(t *testing.T) {
	t.Parallel()

	var p *MapProperties
	got, err := StringProperty(p, "k", "def")
	require.ErrorIs(t, err, ErrPropertyPanic)
	assert.Equal(t, "def", got)
}

//
// -----------------------------------------------------------------------------
// ViperProperties
// -----------------------------------------------------------------------------

type smtpSettings struct {
	Server  string        `mapstructure:"smtp_server"`
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
	Tags    []string      `mapstructure:"tags"`
}

func newTestViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("notification.smtp_server", "smtp.gmail.com")
	v.SetDefault("notification.port", 587)
	v.Set("notification.timeout", "2s")
	v.Set("notification.tags", "a,b")
	v.Set("user.db_type", "MySQL")
	return v
}

func TestViperResolve(t *testing.T) {
	t.Parallel()

	p := NewViperProperties(newTestViper())

	val, ok, err := p.Resolve("user.db_type")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "MySQL", val)

	_, ok, err = p.Resolve("user.missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = (*ViperProperties)(nil).Resolve("user.db_type")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestViperDecode_MergesDefaultsAndHooks(t *testing.T) {
	t.Parallel()

	p := NewViperProperties(newTestViper())

	var got smtpSettings
	require.NoError(t, p.Decode("notification", &got))
	assert.Equal(t, smtpSettings{
		Server:  "smtp.gmail.com",
		Port:    587,
		Timeout: 2 * time.Second,
		Tags:    []string{"a", "b"},
	}, got)
}

func TestViperDecode_MissingKey(t *testing.T) {
	t.Parallel()

	p := NewViperProperties(newTestViper())

	var got smtpSettings
	err := p.Decode("mail.smtp", &got)
	var me MissingDependencyError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, DependencyKey("mail.smtp"), me.Key)

	err = p.Decode("user.db_type.x", &got)
	require.True(t, errors.As(err, &me))
}

func TestViperDecode_NilSource(t *testing.T) {
	t.Parallel()

	var got smtpSettings
	require.ErrorIs(t, (*ViperProperties)(nil).Decode("notification", &got), ErrNilTarget)
}
