//go:build integration

package repository

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go-hospital-booking/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// startPostgres runs a throwaway postgres:16-alpine container through the
// Docker CLI and returns its connection settings and a cleanup function.
func startPostgres(ctx context.Context) (config.DBConfig, func(), error) {
	port, err := getFreePort()
	if err != nil {
		return config.DBConfig{}, nil, fmt.Errorf("find free port: %w", err)
	}

	cfg := config.DBConfig{
		Host:     "localhost",
		Port:     strconv.Itoa(port),
		User:     "testuser",
		Password: "testpass",
		Name:     "hospitaltest",
		SSLMode:  "disable",
	}

	containerName := fmt.Sprintf("hospital-booking-test-%d", port)
	exec.CommandContext(ctx, "docker", "rm", "-f", containerName).Run()

	cmd := exec.CommandContext(ctx, "docker", "run",
		"--name", containerName,
		"-d",
		"-p", fmt.Sprintf("%d:5432", port),
		"-e", "POSTGRES_USER="+cfg.User,
		"-e", "POSTGRES_PASSWORD="+cfg.Password,
		"-e", "POSTGRES_DB="+cfg.Name,
		"postgres:16-alpine",
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return config.DBConfig{}, nil, fmt.Errorf("docker run: %w\noutput: %s", err, string(output))
	}
	containerID := strings.TrimSpace(string(output))

	cleanup := func() {
		exec.Command("docker", "rm", "-f", containerID).Run()
	}

	connStr := fmt.Sprintf("postgres://%s:%s@localhost:%d/%s?sslmode=disable", cfg.User, cfg.Password, port, cfg.Name)
	if err := waitForPostgres(ctx, connStr, 30*time.Second); err != nil {
		cleanup()
		return config.DBConfig{}, nil, fmt.Errorf("wait for postgres: %w", err)
	}

	return cfg, cleanup, nil
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// waitForPostgres polls until the server answers a ping or timeout passes.
func waitForPostgres(ctx context.Context, connStr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		pool, err := pgxpool.New(connCtx, connStr)
		if err == nil {
			err = pool.Ping(connCtx)
			pool.Close()
		}
		cancel()
		if err == nil {
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("postgres not ready after %v", timeout)
}
