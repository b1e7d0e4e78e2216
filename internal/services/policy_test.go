package services

import (
	"testing"

	"github.com/LucaZH/webcup2025-backend/internal/models"
)

func TestCanRead(t *testing.T) {
	owner := &models.User{ID: 1}
	other := &models.User{ID: 2}

	private := &models.DeparturePage{UserID: 1, IsPublic: false}
	public := &models.DeparturePage{UserID: 1, IsPublic: true}

	if !CanRead(private, owner) {
		t.Error("owner should read their own private page")
	}
	if CanRead(private, other) {
		t.Error("non-owner should not read a private page")
	}
	if CanRead(private, nil) {
		t.Error("anonymous caller should not read a private page")
	}
	if !CanRead(public, other) {
		t.Error("non-owner should read a public page")
	}
	if !CanRead(public, nil) {
		t.Error("anonymous caller should read a public page")
	}
}

func TestCanWrite(t *testing.T) {
	owner := &models.User{ID: 1}
	other := &models.User{ID: 2}
	page := &models.DeparturePage{UserID: 1, IsPublic: true}

	if !CanWrite(page, owner) {
		t.Error("owner should write their own page")
	}
	if CanWrite(page, other) {
		t.Error("non-owner should not write the page, public or not")
	}
	if CanWrite(page, nil) {
		t.Error("anonymous caller should not write any page")
	}
}
