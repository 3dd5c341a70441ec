package migration

import (
	"fmt"
	"strings"
	"testing"

	"github.com/acueductoapp/acueducto/internal/config"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func TestApply_SkipsNonPostgres(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// No schema exists yet; skipping must mean skipping the seed as well.
	require.NoError(t, Apply(conn, config.Config{DBType: "sqlite"}, zaptest.NewLogger(t)))

	var count int64
	err = conn.Raw(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'billing_config'`).Scan(&count).Error
	require.NoError(t, err)
	assert.Zero(t, count)
}
