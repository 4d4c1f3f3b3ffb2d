package entities

import (
	"time"

	"gorm.io/gorm"
)

type Tier string

const (
	TierAuthorized   Tier = "authorized"
	TierUnauthorized Tier = "unauthorized"
)

type Kind string

const (
	KindRegular   Kind = "Regular"
	KindReference Kind = "Reference"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

type TransactionAction string

const (
	ActionBorrow TransactionAction = "BORROW"
	ActionReturn TransactionAction = "RETURN"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string         `gorm:"size:100" json:"-"`
	Tier         Tier           `gorm:"size:20;default:unauthorized" json:"tier"`
	TotalFine    float64        `json:"total_fine"`
	Loans        []Loan         `gorm:"foreignKey:UserID" json:"loans,omitempty"`
	Favourites   []Favourite    `gorm:"foreignKey:UserID" json:"favourites,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Loan is one currently-held book. The kind is snapshotted at borrow time so
// fine math stays stable even if the catalog entry is edited or removed.
type Loan struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_user_book,unique" json:"user_id"`
	BookTitle  string    `gorm:"index:idx_user_book,unique;size:512" json:"book_title"`
	Kind       Kind      `gorm:"size:20;default:Regular" json:"kind"`
	BorrowedAt time.Time `json:"borrowed_at"`
	DueAt      time.Time `json:"due_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type Favourite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_fav,unique" json:"user_id"`
	BookTitle string    `gorm:"index:idx_user_fav,unique;size:512" json:"book_title"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"uniqueIndex;size:512" json:"title"` // conventionally "Title by Author"
	Copies     int            `json:"copies"`
	Kind       Kind           `gorm:"size:20;default:Regular" json:"kind"`
	Category   string         `gorm:"index;size:100" json:"category,omitempty"`
	Owner      string         `gorm:"size:100;default:System" json:"owner"`
	Visibility Visibility     `gorm:"size:20;default:PUBLIC" json:"visibility"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is an append-only audit record. The lending engine writes it
// and never reads it back.
type Transaction struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Username  string            `gorm:"index;size:100" json:"username"`
	BookTitle string            `gorm:"size:512" json:"book_title"`
	Action    TransactionAction `gorm:"size:10" json:"action"`
	Date      time.Time         `json:"date"`
	CreatedAt time.Time         `json:"created_at"`
}
