package model

// Foreign keys are nullable: zero ids on the domain side are stored as NULL so
// partial remote rows can still be mirrored. Points are stored as two nullable
// REAL columns and reassembled on read.

// AdventurerModel mirrors the 'adventurers' table.
type AdventurerModel struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Username       string  `gorm:"not null"`
	Password       string  `gorm:"not null"`
	ProfilePicture *string `gorm:"column:profile_picture"`
}

// TableName explicitly sets the table name for GORM.
func (AdventurerModel) TableName() string {
	return "adventurers"
}

// RegionModel mirrors the 'regions' table.
type RegionModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	AdventurerID *int64 `gorm:"column:adventurer_id"`
	Name         string `gorm:"not null"`
	Description  *string
	CenterX      *float64 `gorm:"column:center_x"`
	CenterY      *float64 `gorm:"column:center_y"`
	Radius       float64  `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (RegionModel) TableName() string {
	return "regions"
}

// LandmarkModel mirrors the 'landmarks' table.
type LandmarkModel struct {
	ID        int64    `gorm:"primaryKey;autoIncrement"`
	RegionID  *int64   `gorm:"column:region_id"`
	Name      string   `gorm:"not null"`
	LocationX *float64 `gorm:"column:location_x"`
	LocationY *float64 `gorm:"column:location_y"`
}

// TableName explicitly sets the table name for GORM.
func (LandmarkModel) TableName() string {
	return "landmarks"
}

// AdventureModel mirrors the 'adventures' table.
type AdventureModel struct {
	ID           int64    `gorm:"primaryKey;autoIncrement"`
	AdventurerID *int64   `gorm:"column:adventurer_id"`
	RegionID     *int64   `gorm:"column:region_id"`
	Name         string   `gorm:"not null"`
	TokenCount   int      `gorm:"column:token_count;not null"`
	LocationX    *float64 `gorm:"column:location_x"`
	LocationY    *float64 `gorm:"column:location_y"`
}

// TableName explicitly sets the table name for GORM.
func (AdventureModel) TableName() string {
	return "adventures"
}

// TokenModel mirrors the 'tokens' table.
type TokenModel struct {
	ID          int64    `gorm:"primaryKey;autoIncrement"`
	AdventureID *int64   `gorm:"column:adventure_id"`
	LocationX   *float64 `gorm:"column:location_x"`
	LocationY   *float64 `gorm:"column:location_y"`
	Hint        string   `gorm:"not null"`
	TokenOrder  int      `gorm:"column:token_order;not null"`
}

// TableName explicitly sets the table name for GORM.
func (TokenModel) TableName() string {
	return "tokens"
}

// CompletedAdventureModel mirrors the 'completed_adventures' table.
type CompletedAdventureModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	AdventurerID   *int64 `gorm:"column:adventurer_id"`
	AdventureID    *int64 `gorm:"column:adventure_id"`
	CompletionDate string `gorm:"column:completion_date;not null"`
	CompletionTime string `gorm:"column:completion_time;not null"`
}

// TableName explicitly sets the table name for GORM.
func (CompletedAdventureModel) TableName() string {
	return "completed_adventures"
}
