package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"navix-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := d.db.QueryRow(`
		SELECT id, email, company_name, balance
		FROM profiles
		WHERE id = $1
	`, userID).Scan(&profile.ID, &profile.Email, &profile.CompanyName, &profile.Balance)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", rewritePermission("profiles", err))
	}

	return &profile, nil
}

func (d *DatabaseClient) UpdateProfileBalance(userID uuid.UUID, balance float64) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET balance = $1
		WHERE id = $2
	`, balance, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", rewritePermission("profiles", err))
	}
	return nil
}

func (d *DatabaseClient) InsertProcess(p *models.Process) (*models.Process, error) {
	err := d.db.QueryRow(`
		INSERT INTO processes (user_id, type, code, product, origin, destination, status, progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, p.UserID, p.Type, p.Code, p.Product, p.Origin, p.Destination, p.Status, p.Progress).Scan(
		&p.ID, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create process: %w", rewritePermission("processes", err))
	}

	return p, nil
}

func (d *DatabaseClient) GetProcess(processID, userID uuid.UUID) (*models.Process, error) {
	var p models.Process
	err := d.db.QueryRow(`
		SELECT id, user_id, type, code, product, origin, destination, status, progress, created_at
		FROM processes
		WHERE id = $1 AND user_id = $2
	`, processID, userID).Scan(
		&p.ID, &p.UserID, &p.Type, &p.Code, &p.Product,
		&p.Origin, &p.Destination, &p.Status, &p.Progress, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get process: %w", err)
	}

	return &p, nil
}

// ListProcesses returns the user's processes newest first, optionally
// filtered by operation type.
func (d *DatabaseClient) ListProcesses(userID uuid.UUID, processType string) ([]models.Process, error) {
	query := `
		SELECT id, user_id, type, code, product, origin, destination, status, progress, created_at
		FROM processes
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if processType != "" {
		query += ` AND type = $2`
		args = append(args, processType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", rewritePermission("processes", err))
	}
	defer rows.Close()

	var processes []models.Process
	for rows.Next() {
		var p models.Process
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Type, &p.Code, &p.Product,
			&p.Origin, &p.Destination, &p.Status, &p.Progress, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan process: %w", err)
		}
		processes = append(processes, p)
	}

	return processes, nil
}

func (d *DatabaseClient) InsertDocument(doc *models.Document) error {
	err := d.db.QueryRow(`
		INSERT INTO documents (user_id, process_id, name, type, status, url, date, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, doc.UserID, doc.ProcessID, doc.Name, doc.Type, doc.Status, doc.URL, doc.Date, doc.Size).Scan(&doc.ID)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", rewritePermission("documents", err))
	}
	return nil
}

// InsertDocuments writes all rows in one transaction so a finished wizard
// either records every staged document or none of them.
func (d *DatabaseClient) InsertDocuments(docs []models.Document) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i := range docs {
		doc := &docs[i]
		err := tx.QueryRow(`
			INSERT INTO documents (user_id, process_id, name, type, status, url, date, size)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, doc.UserID, doc.ProcessID, doc.Name, doc.Type, doc.Status, doc.URL, doc.Date, doc.Size).Scan(&doc.ID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create document %s: %w", doc.Name, rewritePermission("documents", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit documents: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetDocument(documentID, userID uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := d.db.QueryRow(`
		SELECT id, user_id, process_id, name, type, status, url, date, size
		FROM documents
		WHERE id = $1 AND user_id = $2
	`, documentID, userID).Scan(
		&doc.ID, &doc.UserID, &doc.ProcessID, &doc.Name,
		&doc.Type, &doc.Status, &doc.URL, &doc.Date, &doc.Size,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &doc, nil
}

func (d *DatabaseClient) ListDocuments(userID uuid.UUID) ([]models.Document, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, process_id, name, type, status, url, date, size
		FROM documents
		WHERE user_id = $1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", rewritePermission("documents", err))
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID, &doc.UserID, &doc.ProcessID, &doc.Name,
			&doc.Type, &doc.Status, &doc.URL, &doc.Date, &doc.Size,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (d *DatabaseClient) InsertTransaction(t *models.Transaction) error {
	err := d.db.QueryRow(`
		INSERT INTO transactions (user_id, description, amount, type, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, t.UserID, t.Description, t.Amount, t.Type, t.Category).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", rewritePermission("transactions", err))
	}
	return nil
}

func (d *DatabaseClient) ListTransactions(userID uuid.UUID) ([]models.Transaction, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, description, amount, type, category, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", rewritePermission("transactions", err))
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &t.Type, &t.Category, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

func (d *DatabaseClient) InsertNotification(n *models.Notification) error {
	err := d.db.QueryRow(`
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, n.UserID, n.Title, n.Message, n.Type).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", rewritePermission("notifications", err))
	}
	return nil
}

func (d *DatabaseClient) ListNotifications(userID uuid.UUID) ([]models.Notification, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, title, message, type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", rewritePermission("notifications", err))
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

func (d *DatabaseClient) MarkNotificationRead(notificationID, userID uuid.UUID) error {
	_, err := d.db.Exec(`
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2
	`, notificationID, userID)
	return err
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
