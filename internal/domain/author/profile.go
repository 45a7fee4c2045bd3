package author

import "gorm.io/datatypes"

// ProfileID is the primary key of the only profile row.
const ProfileID = 1

// SocialLinks maps a network name to a profile URL.
type SocialLinks = datatypes.JSONType[map[string]string]

type Profile struct {
	ID            int         `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name          string      `gorm:"not null" json:"name"`
	Bio           *string     `gorm:"type:text" json:"bio"`
	AvatarImageID *string     `json:"avatar_image_id"`
	SocialLinks   SocialLinks `json:"social_links"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func (Profile) TableName() string {
	return "author_profile"
}

func NewSocialLinks(m map[string]string) SocialLinks {
	return datatypes.NewJSONType(m)
}
