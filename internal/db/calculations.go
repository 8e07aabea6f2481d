package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrCalculationNotFound = errors.New("calculation not found")
)

// CreateCalculation сохраняет успешное вычисление
func CreateCalculation(userID int64, input string, result string) (*Calculation, error) {
	return insertCalculation(userID, input, StatusCompleted, &result, nil)
}

// CreateFailedCalculation сохраняет строку, которую не удалось вычислить
func CreateFailedCalculation(userID int64, input string, errorMessage string) (*Calculation, error) {
	return insertCalculation(userID, input, StatusError, nil, &errorMessage)
}

func insertCalculation(userID int64, input, status string, result, errorMessage *string) (*Calculation, error) {
	DbMutex.Lock()
	defer DbMutex.Unlock()

	res, err := DB.Exec(
		`INSERT INTO calculations (user_id, input, status, result, error_message) VALUES (?, ?, ?, ?, ?)`,
		userID, input, status, result, errorMessage,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &Calculation{
		ID:           id,
		UserID:       userID,
		Input:        input,
		Status:       status,
		Result:       result,
		ErrorMessage: errorMessage,
		CreatedAt:    time.Now(),
	}, nil
}

// GetUserCalculationByID получает вычисление пользователя по ID.
// Чужие записи считаются ненайденными.
func GetUserCalculationByID(userID, id int64) (*Calculation, error) {
	row := DB.QueryRow(
		`SELECT id, user_id, input, status, result, error_message, created_at
         FROM calculations WHERE id = ? AND user_id = ?`,
		id, userID,
	)

	calculation, err := scanCalculation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCalculationNotFound
		}
		return nil, err
	}
	return calculation, nil
}

// GetUserCalculations получает историю пользователя, новые записи первыми
func GetUserCalculations(userID int64) ([]*Calculation, error) {
	rows, err := DB.Query(
		`SELECT id, user_id, input, status, result, error_message, created_at
         FROM calculations
         WHERE user_id = ?
         ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calculations []*Calculation
	for rows.Next() {
		calculation, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calculations = append(calculations, calculation)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return calculations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCalculation(row rowScanner) (*Calculation, error) {
	var calculation Calculation
	var createdAtStr string
	var result, errorMessage sql.NullString

	err := row.Scan(
		&calculation.ID, &calculation.UserID, &calculation.Input, &calculation.Status,
		&result, &errorMessage, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	if result.Valid {
		val := result.String
		calculation.Result = &val
	}

	if errorMessage.Valid {
		val := errorMessage.String
		calculation.ErrorMessage = &val
	}

	calculation.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &calculation, nil
}
