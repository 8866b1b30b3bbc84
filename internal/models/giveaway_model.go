package models

import "time"

type Giveaway struct {
	ID        int64     `db:"id" json:"id"`
	ClientID  int64     `db:"client_id" json:"client_id"`
	Title     string    `db:"title" json:"title"`
	Platform  string    `db:"platform" json:"platform"`
	Prize     string    `db:"prize" json:"prize"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	EndsAt    time.Time `db:"ends_at" json:"ends_at"`
	Status    string    `db:"status" json:"status"` // upcoming, running, ended
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type GiveawayWin struct {
	ID           int64     `db:"id" json:"id"`
	GiveawayID   int64     `db:"giveaway_id" json:"giveaway_id"`
	WinnerHandle string    `db:"winner_handle" json:"winner_handle"`
	WonAt        time.Time `db:"won_at" json:"won_at"`
}
