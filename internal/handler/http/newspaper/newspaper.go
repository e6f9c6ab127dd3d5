// Package newspaper provides HTTP handlers for the daily newspaper.
package newspaper

import (
	"net/http"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/newsletter"
	"newsroom/internal/handler/http/respond"
	paperUC "newsroom/internal/usecase/newspaper"
)

// ItemDTO is one newsletter featured in a newspaper.
type ItemDTO struct {
	ID           string          `json:"id"`
	Category     string          `json:"category" example:"Technology"`
	Highlight    bool            `json:"highlight"`
	Summary      string          `json:"summary" example:"A technology newsletter by Alice"`
	NewsletterID *string         `json:"newsletterId"`
	Newsletter   *newsletter.DTO `json:"newsletter,omitempty"`
}

// DTO is a daily newspaper.
type DTO struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title" example:"Daily Digest - 3/1/2026"`
	Summary   string    `json:"summary"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Items     []ItemDTO `json:"items"`
}

type generateResponse struct {
	Message   string `json:"message" example:"Newspaper generated successfully"`
	Newspaper DTO    `json:"newspaper"`
}

func toDTO(p *entity.DailyNewspaper) DTO {
	out := DTO{
		ID:        p.ID,
		Date:      p.Date,
		Title:     p.Title,
		Summary:   p.Summary,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		Items:     make([]ItemDTO, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		item := ItemDTO{
			ID:        it.ID,
			Category:  it.Category.String(),
			Highlight: it.Highlight,
			Summary:   it.Summary,
		}
		// null once the newsletter has been deleted
		if it.NewsletterID != "" {
			id := it.NewsletterID
			item.NewsletterID = &id
		}
		if it.Newsletter != nil {
			nl := newsletter.ToDTO(it.Newsletter, false)
			item.Newsletter = &nl
		}
		out.Items = append(out.Items, item)
	}
	return out
}

type TodayHandler struct{ Svc *paperUC.Service }

// ServeHTTP 本日の新聞
// @Summary      本日の新聞
// @Description  本日生成された新聞を記事・著者付きで返します
// @Tags         newspaper
// @Produce      json
// @Success      200 {object} DTO
// @Failure      404 {object} map[string]string "未生成"
// @Router       /api/newspaper [get]
func (h TodayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	paper, err := h.Svc.GetToday(r.Context())
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(paper))
}

type GenerateHandler struct{ Svc *paperUC.Service }

// ServeHTTP 新聞生成（管理者）
// @Summary      本日の新聞を生成
// @Description  本日公開されたニュースレターをカテゴリ別にまとめ、AI による要約付きで保存します
// @Tags         admin
// @Security     SessionCookie
// @Produce      json
// @Success      201 {object} generateResponse
// @Failure      400 {object} map[string]string "生成済み・対象なし"
// @Failure      401 {object} map[string]string "管理者以外"
// @Failure      500 {object} map[string]string "要約生成失敗"
// @Router       /api/admin/generate-newspaper [post]
func (h GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	paper, err := h.Svc.Generate(r.Context())
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, generateResponse{
		Message:   "Newspaper generated successfully",
		Newspaper: toDTO(paper),
	})
}

// Register registers the newspaper routes.
func Register(mux *http.ServeMux, svc *paperUC.Service) {
	mux.Handle("GET    /api/newspaper", TodayHandler{svc})
	mux.Handle("POST   /api/admin/generate-newspaper", auth.RequireAdmin(GenerateHandler{svc}))
}
