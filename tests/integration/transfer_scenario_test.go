package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trash2cash/rewards/internal/pkg/database"
	"github.com/trash2cash/rewards/internal/pkg/jwt"
	"github.com/trash2cash/rewards/internal/pkg/logging"
	"github.com/trash2cash/rewards/internal/rewards/bootstrap"
	"github.com/trash2cash/rewards/internal/rewards/domain"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	httpHost   = "localhost"
	testSecret = "secret-key"
)

type testUser struct {
	id    int
	email string
	token string
}

func setupDatabase(t *testing.T) (*sql.DB, database.PostgresSettings) {
	t.Helper()

	pg, err := postgres.Run(
		t.Context(),
		"postgres:16-alpine",
		postgres.WithDatabase("rewards_db"),
		postgres.WithUsername("admin"),
		postgres.WithPassword("password"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(t.Context()) })

	connStr, err := pg.ConnectionString(t.Context(), "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.Eventually(t, func() bool {
		timeCtx, cancel := context.WithTimeout(t.Context(), 500*time.Millisecond)
		defer cancel()
		return db.PingContext(timeCtx) == nil
	}, 30*time.Second, 500*time.Millisecond)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "../../migrations"))

	dbSettings := database.PostgresSettings{
		User:       "admin",
		Password:   "password",
		DBName:     "rewards_db",
		SSlEnabled: false,
	}

	dbHost, err := pg.Host(t.Context())
	require.NoError(t, err)
	dbPort, err := pg.MappedPort(t.Context(), "5432/tcp")
	require.NoError(t, err)

	dbSettings.Host = dbHost
	dbSettings.Port = dbPort.Port()

	return db, dbSettings
}

func runRewardsService(t *testing.T, dbSettings database.PostgresSettings, httpPort string) {
	t.Helper()

	app := bootstrap.NewRewardsApp(bootstrap.RewardsConfig{
		DbSettings: dbSettings,
		JwtSecret:  testSecret,
		HttpPort:   httpPort,
	}, logging.StdoutLogger)

	go func() {
		err := app.Run(t.Context())
		assert.NoError(t, err)
	}()
	t.Cleanup(func() {
		app.Shutdown()
	})

	waitForService(t, httpPort, 10*time.Second)
}

func waitForService(t *testing.T, httpPort string, timeout time.Duration) {
	t.Helper()

	healthConnStr := "http://" + httpHost + httpPort + "/healthz"

	require.Eventually(t, func() bool {
		resp, err := http.Get(healthConnStr)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, timeout, 250*time.Millisecond)
}

func seedUser(t *testing.T, db *sql.DB, email, phone, firstName, lastName string, points int) testUser {
	t.Helper()

	var id int
	err := db.QueryRowContext(t.Context(),
		`INSERT INTO users (email, phone_number, first_name, last_name, total_points, eco_level)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		email, phone, firstName, lastName, points, domain.EcoLevelForPoints(points),
	).Scan(&id)
	require.NoError(t, err)

	issuer := jwt.NewJWTTokenIssuer()
	token, err := issuer.IssueToken([]byte(testSecret), id, email, time.Hour)
	require.NoError(t, err)

	return testUser{id: id, email: email, token: token}
}

func doJSONRequest(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(bodyJSON)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, respBody
}

func userBalance(t *testing.T, db *sql.DB, userID int) int {
	t.Helper()

	var balance int
	err := db.QueryRowContext(t.Context(), `SELECT total_points FROM users WHERE id = $1`, userID).Scan(&balance)
	require.NoError(t, err)

	return balance
}

func TestTransferScenario(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, dbSettings := setupDatabase(t)

	httpPort := ":18080"
	runRewardsService(t, dbSettings, httpPort)

	sender := seedUser(t, db, "sender@example.com", "+10000000001", "Sam", "Sender", 200)
	receiver := seedUser(t, db, "receiver@example.com", "+10000000002", "Rita", "Receiver", domain.StartBalance)

	baseURL := "http://" + httpHost + httpPort

	// CHECK RECEIVER
	resp, respBody := doJSONRequest(t, http.MethodPost, baseURL+"/api/points/check-receiver", sender.token,
		map[string]any{"email_or_phone": "receiver@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var checkResp struct {
		Exists   bool `json:"exists"`
		IsSelf   bool `json:"is_self"`
		Receiver struct {
			FullName string `json:"full_name"`
		} `json:"receiver"`
	}
	require.NoError(t, json.Unmarshal(respBody, &checkResp))
	assert.True(t, checkResp.Exists)
	assert.False(t, checkResp.IsSelf)
	assert.Equal(t, "Rita Receiver", checkResp.Receiver.FullName)

	// TRANSFER
	resp, respBody = doJSONRequest(t, http.MethodPost, baseURL+"/api/points/transfer", sender.token,
		map[string]any{"receiver_email_or_phone": "receiver@example.com", "points": 60})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var transferResp struct {
		NewBalance   int    `json:"new_balance"`
		EcoLevel     string `json:"eco_level"`
		ReceiverName string `json:"receiver_name"`
	}
	require.NoError(t, json.Unmarshal(respBody, &transferResp))
	assert.Equal(t, 140, transferResp.NewBalance)
	assert.Equal(t, domain.LevelBeginner, transferResp.EcoLevel)
	assert.Equal(t, "Rita Receiver", transferResp.ReceiverName)

	assert.Equal(t, 140, userBalance(t, db, sender.id))
	assert.Equal(t, domain.StartBalance+60, userBalance(t, db, receiver.id))

	// Both sides of the transfer were written as one pair.
	var sentCount, receivedCount int
	require.NoError(t, db.QueryRowContext(t.Context(),
		`SELECT count(*) FROM history WHERE user_id = $1 AND action = 'transfer_out' AND points = 60`,
		sender.id).Scan(&sentCount))
	require.NoError(t, db.QueryRowContext(t.Context(),
		`SELECT count(*) FROM history WHERE user_id = $1 AND action = 'transfer_in' AND points = 60`,
		receiver.id).Scan(&receivedCount))
	assert.Equal(t, 1, sentCount)
	assert.Equal(t, 1, receivedCount)

	// INSUFFICIENT BALANCE: nothing changes, nothing is written
	resp, _ = doJSONRequest(t, http.MethodPost, baseURL+"/api/points/transfer", sender.token,
		map[string]any{"receiver_email_or_phone": "receiver@example.com", "points": 10000})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, 140, userBalance(t, db, sender.id))
	assert.Equal(t, domain.StartBalance+60, userBalance(t, db, receiver.id))

	var entryCount int
	require.NoError(t, db.QueryRowContext(t.Context(), `SELECT count(*) FROM history`).Scan(&entryCount))
	assert.Equal(t, 2, entryCount)

	// SELF TRANSFER and BELOW MINIMUM are both rejected
	resp, _ = doJSONRequest(t, http.MethodPost, baseURL+"/api/points/transfer", sender.token,
		map[string]any{"receiver_email_or_phone": "sender@example.com", "points": 60})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSONRequest(t, http.MethodPost, baseURL+"/api/points/transfer", sender.token,
		map[string]any{"receiver_email_or_phone": "receiver@example.com", "points": 4})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, dbSettings := setupDatabase(t)

	httpPort := ":18081"
	runRewardsService(t, dbSettings, httpPort)

	startingPoints := 100
	transferPoints := 30
	workers := 10

	sender := seedUser(t, db, "busy@example.com", "+10000000003", "Busy", "Bee", startingPoints)
	receiver := seedUser(t, db, "lucky@example.com", "+10000000004", "Lucky", "Duck", domain.StartBalance)

	transferURL := "http://" + httpHost + httpPort + "/api/points/transfer"

	var wg sync.WaitGroup
	succeeded := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, _ := doJSONRequest(t, http.MethodPost, transferURL, sender.token,
				map[string]any{"receiver_email_or_phone": "lucky@example.com", "points": transferPoints})

			if resp.StatusCode == http.StatusOK {
				succeeded <- struct{}{}
			}
		}()
	}

	wg.Wait()
	close(succeeded)

	successCount := len(succeeded)
	expectedSuccesses := startingPoints / transferPoints

	assert.Equal(t, expectedSuccesses, successCount,
		fmt.Sprintf("only %d transfers of %d points fit into %d", expectedSuccesses, transferPoints, startingPoints))

	senderBalance := userBalance(t, db, sender.id)
	assert.GreaterOrEqual(t, senderBalance, 0)
	assert.Equal(t, startingPoints-successCount*transferPoints, senderBalance)
	assert.Equal(t, domain.StartBalance+successCount*transferPoints, userBalance(t, db, receiver.id))

	// The ledger stays pairwise balanced.
	var outSum, inSum int
	require.NoError(t, db.QueryRowContext(t.Context(),
		`SELECT coalesce(sum(points), 0) FROM history WHERE action = 'transfer_out'`).Scan(&outSum))
	require.NoError(t, db.QueryRowContext(t.Context(),
		`SELECT coalesce(sum(points), 0) FROM history WHERE action = 'transfer_in'`).Scan(&inSum))
	assert.Equal(t, outSum, inSum)
	assert.Equal(t, successCount*transferPoints, outSum)
}
