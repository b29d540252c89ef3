package model

// File describes an uploaded blob stored under its sanitized name.
type File struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:128;not null"`
}

// TableName 指定表名
func (File) TableName() string {
	return "file"
}

// PathFunc builds the download URL path for a stored file name.
type PathFunc func(name string) string

// FileResponse is the JSON form of a File.
type FileResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// ToResponse 转换为响应格式
func (f *File) ToResponse(pathFor PathFunc) FileResponse {
	return FileResponse{
		ID:   f.ID,
		Name: f.Name,
		Path: pathFor(f.Name),
	}
}
