package blobstore

// UploadResult результат загрузки файла
type UploadResult struct {
	PublicID string // путь внутри хранилища, по нему файл удаляется
	URL      string // публичный URL файла
	Size     int64
}
