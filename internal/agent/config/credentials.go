// Package config хранит локальное состояние CLI-клиента AdHub.
//
// Учётные данные лежат в домашней директории пользователя:
//
//	~/.adhub/credentials.json
//
// Файл пишется с правами 0600, директория с правами 0700.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Credentials: сохранённая сессия CLI.
//
// Server запоминает адрес, на котором выполнен login: refresh должен
// уходить туда же, даже если флаг --server в следующий раз не передан.
type Credentials struct {
	Server       string `json:"server,omitempty"`
	Email        string `json:"email,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoggedIn сообщает, что в файле есть пара токенов.
func (c *Credentials) LoggedIn() bool {
	return c != nil && c.AccessToken != "" && c.RefreshToken != ""
}

// DefaultPath возвращает <home>/.adhub/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".adhub", "credentials.json"), nil
}

// Load загружает учётные данные из файла.
//
// Отсутствующий файл: пустые Credentials без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет учётные данные, создавая директорию при необходимости.
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return err
	}
	// WriteFile не меняет права уже существующего файла
	return os.Chmod(path, 0o600)
}

// Clear удаляет файл с учётными данными. Отсутствие файла ошибкой не считается.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
