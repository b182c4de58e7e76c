package postgres_test

import (
	"context"
	"testing"
	"time"

	gorm "github.com/jinzhu/gorm"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"

	"blinds-orders/internal/models"
	repo "blinds-orders/internal/repository"
	pg "blinds-orders/internal/repository/postgres"
)

type pgEnv struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
	DB       *gorm.DB
	R        *pg.OrderPostgresRepo
}

func upPostgres(t *testing.T) *pgEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_DB=orders",
		"POSTGRES_USER=app",
		"POSTGRES_PASSWORD=app",
	})
	require.NoError(t, err)

	env := &pgEnv{pool: pool, resource: resource}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	require.NoError(t, pool.Retry(func() error {
		db, err := pg.ConnectDB(pg.Config{
			Host:     "localhost",
			Port:     resource.GetPort("5432/tcp"),
			Username: "app",
			Password: "app",
			DbName:   "orders",
			SslMode:  "disable",
		})
		if err != nil {
			return err
		}
		if err := pg.Migrate(db); err != nil {
			return err
		}
		env.DB = db
		env.R = pg.NewOrderPostgres(db)
		return nil
	}))
	t.Cleanup(func() { _ = env.DB.Close() })

	return env
}

func woodenOrder(id, number string) models.Order {
	base := models.BaseSize35mm
	side := models.OperatingSideLeft
	color := "W-12"
	at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	o := models.Order{
		ID:              id,
		OrderNumber:     number,
		OrderType:       models.OrderTypeWooden,
		Status:          models.StatusPending,
		CustomerName:    "Asha",
		Width:           36,
		Height:          72,
		Quantity:        1,
		BaseSize:        &base,
		OperatingSide:   &side,
		WoodenColorCode: &color,
		CreatedAt:       at,
		CreatedBy:       "sales@shop",
		UpdatedAt:       at,
		UpdatedBy:       "sales@shop",
	}
	o.SetWoodenSpec(models.WoodenSpec{NumberOfSlats: 58, TiltCordLength: 144, CordLength: 216, LadderTapeSize: 150, MsRoad: 31, ChannelUching: 35, ChannelUchingCm: 88.9})
	return o
}

func Test_Postgres_ReplaceGetGetAll_Positive(t *testing.T) {
	env := upPostgres(t)
	ctx := context.Background()

	o1 := woodenOrder("id-1", "DDI-673")
	require.NoError(t, env.R.Replace(ctx, o1))

	got, err := env.R.Get(ctx, "id-1")
	require.NoError(t, err)
	require.Equal(t, "DDI-673", got.OrderNumber)
	require.Equal(t, models.BaseSize35mm, *got.BaseSize)
	require.Equal(t, 58, *got.NumberOfSlats)

	o1.Status = models.StatusReady
	o1.UpdatedAt = o1.UpdatedAt.Add(time.Hour)
	o1.UpdatedBy = "floor@shop"
	require.NoError(t, env.R.Replace(ctx, o1))

	got2, err := env.R.Get(ctx, "id-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusReady, got2.Status)
	require.Equal(t, "floor@shop", got2.UpdatedBy)
	require.True(t, o1.UpdatedAt.Equal(got2.UpdatedAt), "stored timestamp must be the one written")

	require.NoError(t, env.R.Replace(ctx, woodenOrder("id-2", "DDI-674")))

	all, err := env.R.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func Test_Postgres_Get_NotFound(t *testing.T) {
	env := upPostgres(t)

	_, err := env.R.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func Test_Postgres_GetAll_Empty_OK(t *testing.T) {
	env := upPostgres(t)

	all, err := env.R.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 0)
}

func Test_Postgres_Replace_DroppedTable_Error(t *testing.T) {
	env := upPostgres(t)

	require.NoError(t, env.DB.DropTable(&models.Order{}).Error)

	err := env.R.Replace(context.Background(), woodenOrder("id-x", "DDI-700"))
	require.Error(t, err)
}

func Test_Postgres_Replace_CancelledContext(t *testing.T) {
	env := upPostgres(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, env.R.Replace(ctx, woodenOrder("id-c", "DDI-701")), context.Canceled)
}
