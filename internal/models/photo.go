package models

import "fmt"

// User is a row of the users table.
type User struct {
	ID           int64  `json:"userid" db:"userid"`
	Email        string `json:"email" db:"email"`
	LastName     string `json:"lastname" db:"lastname"`
	FirstName    string `json:"firstname" db:"firstname"`
	BucketFolder string `json:"bucketfolder" db:"bucketfolder"`
}

// Asset is a row of the assets table.
type Asset struct {
	ID        int64  `json:"assetid" db:"assetid"`
	UserID    int64  `json:"userid" db:"userid"`
	AssetName string `json:"assetname" db:"assetname"`
	BucketKey string `json:"bucketkey" db:"bucketkey"`
}

// Stats is the aggregate report printed by the stats command.
type Stats struct {
	BucketName string
	Objects    int
	Endpoint   string
	Users      int64
	Assets     int64
}

// AssetKey builds the object key for a new asset. The extension is always .jpg.
func AssetKey(bucketFolder, token string) string {
	return fmt.Sprintf("%s/%s.jpg", bucketFolder, token)
}
