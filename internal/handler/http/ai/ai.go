// Package ai provides HTTP handlers for the writing assistant: title
// suggestions, text improvement and draft generation.
package ai

import (
	"net/http"
	"unicode/utf8"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/decode"
	"newsroom/internal/handler/http/respond"
	aiUC "newsroom/internal/usecase/ai"
)

// MinInputLength is the shortest content or text accepted for titles and improvement.
const MinInputLength = 50

type titlesRequest struct {
	Content string `json:"content"`
}

type titlesResponse struct {
	Titles []string `json:"titles"`
}

type improveRequest struct {
	Text string `json:"text"`
}

type improveResponse struct {
	ImprovedText string `json:"improvedText"`
}

type generateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Type   string `json:"type" enums:"title,content,improve"`
}

type generateResponse struct {
	Content    string `json:"content"`
	IsFallback bool   `json:"isFallback,omitempty"`
	Message    string `json:"message,omitempty"`
}

type TitlesHandler struct{ Svc *aiUC.Service }

// ServeHTTP タイトル候補生成
// @Summary      タイトル候補生成
// @Description  本文から最大3件のタイトル候補を生成します。AI が失敗した場合は空配列を返します
// @Tags         ai
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        request body titlesRequest true "本文（50文字以上）"
// @Success      200 {object} titlesResponse
// @Failure      400 {object} map[string]string "本文が短い"
// @Failure      401 {object} map[string]string "未ログイン"
// @Router       /api/ai/generate-titles [post]
func (h TitlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req titlesRequest
	if err := decode.JSON(r, &req); err != nil || utf8.RuneCountInString(req.Content) < MinInputLength {
		respond.Error(w, http.StatusBadRequest, "Content must be at least 50 characters")
		return
	}
	respond.JSON(w, http.StatusOK, titlesResponse{Titles: h.Svc.SuggestTitles(r.Context(), req.Content)})
}

type ImproveHandler struct{ Svc *aiUC.Service }

// ServeHTTP 文章改善
// @Summary      文章改善
// @Description  文章を校正・改善します。AI が失敗した場合は入力をそのまま返します
// @Tags         ai
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        request body improveRequest true "文章（50文字以上）"
// @Success      200 {object} improveResponse
// @Failure      400 {object} map[string]string "文章が短い"
// @Failure      401 {object} map[string]string "未ログイン"
// @Router       /api/ai/improve-text [post]
func (h ImproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if err := decode.JSON(r, &req); err != nil || utf8.RuneCountInString(req.Text) < MinInputLength {
		respond.Error(w, http.StatusBadRequest, "Text must be at least 50 characters")
		return
	}
	respond.JSON(w, http.StatusOK, improveResponse{ImprovedText: h.Svc.ImproveText(r.Context(), req.Text)})
}

type GenerateHandler struct{ Svc *aiUC.Service }

// ServeHTTP 下書き生成
// @Summary      下書き生成
// @Description  タイトル・本文・改善文を生成します。AI が失敗した場合は定型文を isFallback 付きで返します
// @Tags         ai
// @Security     SessionCookie
// @Accept       json
// @Produce      json
// @Param        request body generateRequest true "プロンプトと種類"
// @Success      200 {object} generateResponse
// @Failure      400 {object} map[string]string "入力不正"
// @Failure      401 {object} map[string]string "未ログイン"
// @Router       /api/ai/generate [post]
func (h GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decode.JSON(r, &req); err != nil {
		respond.DomainError(w, r, err)
		return
	}
	draft, err := h.Svc.Draft(r.Context(), aiUC.DraftKind(req.Type), req.Prompt)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, generateResponse{
		Content:    draft.Content,
		IsFallback: draft.IsFallback,
		Message:    draft.Message,
	})
}

// Register registers the assistant routes; all of them need a session.
func Register(mux *http.ServeMux, svc *aiUC.Service) {
	mux.Handle("POST   /api/ai/generate-titles", auth.RequireUser(TitlesHandler{svc}))
	mux.Handle("POST   /api/ai/improve-text", auth.RequireUser(ImproveHandler{svc}))
	mux.Handle("POST   /api/ai/generate", auth.RequireUser(GenerateHandler{svc}))
}
