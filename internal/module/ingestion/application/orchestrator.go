package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jinford/scansheet/internal/module/ingestion/domain"
)

// serverReplyPrefix はリモート処理サービスの応答をユーザーへ提示するときの
// ラッパーです。本文そのものはサーバーが所有します。
const serverReplyPrefix = "サーバーからの返事: "

// Endpoints はオーケストレーターが使う2つのリモートエンドポイントです
type Endpoints struct {
	CreateTemplate   string
	ExtractDocuments string
}

// Orchestrator は2つのワークフロー（テンプレート作成/ドキュメント抽出）を
// 駆動する状態機械です。1インスタンスが1つのUIサーフェスに対応し、
// 送信中の再入は拒否されます。
type Orchestrator struct {
	tokens    domain.TokenProvider
	transport domain.Transport
	registry  domain.RegistryRefresher
	endpoints Endpoints
	log       *slog.Logger

	mu       sync.Mutex
	state    domain.JobState
	inFlight bool
}

// NewOrchestrator は新しいOrchestratorを作成します
func NewOrchestrator(tokens domain.TokenProvider, transport domain.Transport, registry domain.RegistryRefresher, endpoints Endpoints, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		tokens:    tokens,
		transport: transport,
		registry:  registry,
		endpoints: endpoints,
		log:       log,
		state:     domain.StateIdle,
	}
}

// State は現在の状態を返します
func (o *Orchestrator) State() domain.JobState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// CreateTemplate はテンプレート作成ワークフローを実行します。
// 成功時はレジストリを1回だけ更新します。
func (o *Orchestrator) CreateTemplate(ctx context.Context, job *domain.UploadJob) domain.WorkflowResult {
	return o.run(ctx, job, o.endpoints.CreateTemplate, createTemplatePayload, o.refreshRegistry)
}

// ExtractDocuments はドキュメント抽出ワークフローを実行します
func (o *Orchestrator) ExtractDocuments(ctx context.Context, job *domain.UploadJob) domain.WorkflowResult {
	return o.run(ctx, job, o.endpoints.ExtractDocuments, extractDocumentsPayload, nil)
}

// run は共通ライフサイクルを実行します:
// Idle → Validating → TokenAcquisition → Submitting → Completed → Idle。
// 各ステップは前段の完了後にのみ始まり、自動リトライはしません。
func (o *Orchestrator) run(ctx context.Context, job *domain.UploadJob, endpoint string, buildPayload func(*domain.UploadJob) domain.FormPayload, onSuccess func(context.Context, *domain.UploadJob)) domain.WorkflowResult {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		o.log.Warn("submission rejected: job already in flight", "jobID", job.ID)
		return domain.WorkflowResult{
			JobID:   job.ID,
			OK:      false,
			Message: "別の送信が進行中です。完了までお待ちください。",
			Err:     domain.ErrBusy,
		}
	}
	o.inFlight = true
	o.mu.Unlock()

	// ガードはあらゆる終了経路で必ず解除する
	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.state = domain.StateIdle
		o.mu.Unlock()
	}()

	o.setState(domain.StateValidating)
	if err := job.Validate(); err != nil {
		o.log.Info("job rejected by validation", "jobID", job.ID, "kind", job.Kind, "error", err)
		return o.completed(job, false, validationMessage(err), err)
	}

	o.setState(domain.StateTokenAcquisition)
	token, err := o.tokens.Token(ctx)
	if err != nil {
		o.log.Warn("token acquisition failed", "jobID", job.ID, "error", err)
		return o.completed(job, false, "サインインが必要です。ログインしてから再実行してください。", err)
	}

	o.setState(domain.StateSubmitting)
	result, err := o.transport.Send(ctx, endpoint, token, buildPayload(job))
	if err != nil {
		o.log.Error("submission failed before response", "jobID", job.ID, "error", err)
		return o.completed(job, false, fmt.Sprintf("送信に失敗しました: %v", err), err)
	}

	if !result.OK {
		o.log.Warn("submission rejected by server", "jobID", job.ID, "status", result.StatusCode)
		return o.completed(job, false, result.Body, nil)
	}

	if onSuccess != nil {
		onSuccess(ctx, job)
	}

	o.log.Info("job completed", "jobID", job.ID, "kind", job.Kind, "status", result.StatusCode)
	return o.completed(job, true, serverReplyPrefix+result.Body, nil)
}

func (o *Orchestrator) setState(state domain.JobState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

func (o *Orchestrator) completed(job *domain.UploadJob, ok bool, message string, err error) domain.WorkflowResult {
	o.setState(domain.StateCompleted)
	return domain.WorkflowResult{
		JobID:   job.ID,
		OK:      ok,
		Message: message,
		Err:     err,
	}
}

// refreshRegistry はテンプレート作成成功後にレジストリを更新します。
// 更新失敗はジョブの成否を覆さず、次回の明示的なRefreshに委ねます。
func (o *Orchestrator) refreshRegistry(ctx context.Context, job *domain.UploadJob) {
	if o.registry == nil {
		return
	}
	if _, err := o.registry.Refresh(ctx); err != nil {
		o.log.Warn("registry refresh after template creation failed", "jobID", job.ID, "error", err)
	}
}

func validationMessage(err error) string {
	if verr, ok := err.(*domain.ValidationError); ok {
		return verr.Message
	}
	return err.Error()
}

func createTemplatePayload(job *domain.UploadJob) domain.FormPayload {
	payload := domain.FormPayload{
		Values: []domain.FormValue{
			{Key: "template_name", Value: job.TemplateName},
		},
	}
	if job.SpreadsheetURL != "" {
		payload.Values = append(payload.Values, domain.FormValue{Key: "spreadsheet_url", Value: job.SpreadsheetURL})
	}
	payload.Files = append(payload.Files, domain.FormFile{Field: "file", Blob: job.Files[0]})
	return payload
}

func extractDocumentsPayload(job *domain.UploadJob) domain.FormPayload {
	payload := domain.FormPayload{
		Values: []domain.FormValue{
			{Key: "template_name", Value: job.TemplateName},
		},
	}
	if job.SpreadsheetID != "" {
		payload.Values = append(payload.Values, domain.FormValue{Key: "spreadsheet_id", Value: job.SpreadsheetID})
	}
	if job.PromptHints != "" {
		payload.Values = append(payload.Values, domain.FormValue{Key: "prompt_items", Value: job.PromptHints})
	}
	for _, blob := range job.Files {
		payload.Files = append(payload.Files, domain.FormFile{Field: "files", Blob: blob})
	}
	return payload
}
