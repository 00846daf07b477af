package domain

import (
	"github.com/google/uuid"
)

// JobKind はワークフローの種別です。ペイロードの組み立てのみが異なり、
// 検証→トークン取得→送信→完了のライフサイクルは共通です。
type JobKind string

const (
	// KindCreateTemplate はテンプレート作成ワークフロー
	KindCreateTemplate JobKind = "create_template"
	// KindExtractDocuments はドキュメント抽出ワークフロー
	KindExtractDocuments JobKind = "extract_documents"
)

// JobState はオーケストレーターの状態機械の状態です
type JobState string

const (
	StateIdle             JobState = "idle"
	StateValidating       JobState = "validating"
	StateTokenAcquisition JobState = "token_acquisition"
	StateSubmitting       JobState = "submitting"
	StateCompleted        JobState = "completed"
)

// FileBlob は送信対象のバイナリ1件です
type FileBlob struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadJob はワークフロー1回分の入力です。送信ごとに構築され、
// 完了または失敗とともに破棄されます。
type UploadJob struct {
	ID           uuid.UUID
	Kind         JobKind
	TemplateName string
	// SpreadsheetID は解決済みのバインド先（抽出ワークフロー、省略可）
	SpreadsheetID string
	// SpreadsheetURL は作成ワークフローでユーザーが与えるシート参照（省略可）
	SpreadsheetURL string
	// PromptHints は抽出のヒントになる自由記述（省略可）
	PromptHints string
	Files       []FileBlob
}

// NewUploadJob は新しいジョブを作成します
func NewUploadJob(kind JobKind, templateName string) *UploadJob {
	return &UploadJob{
		ID:           uuid.New(),
		Kind:         kind,
		TemplateName: templateName,
	}
}

// Validate は構造チェックのみを行います。ネットワークアクセスはしません
func (j *UploadJob) Validate() error {
	if j.TemplateName == "" {
		return &ValidationError{Message: "テンプレート名が指定されていません。"}
	}
	if len(j.Files) == 0 {
		return &ValidationError{Message: "ファイルが含まれていません。"}
	}
	for _, file := range j.Files {
		if len(file.Data) == 0 {
			return &ValidationError{Message: "アップロードされたファイルが空でした。"}
		}
	}
	if j.Kind == KindCreateTemplate && len(j.Files) != 1 {
		return &ValidationError{Message: "テンプレート作成ではファイルを1件だけ指定してください。"}
	}
	return nil
}

// WorkflowResult はジョブの終端結果です。必ずUI層へ1件だけ渡されます
type WorkflowResult struct {
	JobID uuid.UUID
	OK    bool
	// Message はユーザーに提示する確認/失敗メッセージ
	Message string
	// Err は失敗分類（ErrBusy / ErrValidationFailed / Unauthenticated / ...）
	Err error
}
