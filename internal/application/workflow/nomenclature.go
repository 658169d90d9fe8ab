package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
	"ad-workflow-api/pkg/errors"
)

const (
	// maxDescriptiveNameLen 命名中描述性名称的长度上限
	maxDescriptiveNameLen = 25

	// FallbackOriginCode 来源缺失 code 时的兜底值
	FallbackOriginCode = "OUTRO"
	// FallbackCreatorCode 未指定创作者时的兜底值
	FallbackCreatorCode = "NO1"
	// unknownCreatorCode 创作者名称无法生成编码时的兜底值
	unknownCreatorCode = "UNKNWN"
)

// stripAccents NFD 分解后移除组合变音符号
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sanitize 规范化描述性名称：
// 去除重音、转大写、只保留 A-Z0-9、截断到 25 字符
// 创建与重新生成命名共用同一规则，保证存量与新算值可比
func Sanitize(name string) string {
	stripped, _, err := transform.String(stripAccents, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(stripped) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= maxDescriptiveNameLen {
			break
		}
	}
	return b.String()
}

// CreatorCode 为未定义 code 的创作者生成编码
// 单词 1 个取前 6 字符；多个单词各取前 3 字符拼接后截到 8
func CreatorCode(name string) string {
	stripped, _, err := transform.String(stripAccents, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(stripped) {
		if (r >= 'A' && r <= 'Z') || r == ' ' {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	switch len(words) {
	case 0:
		return unknownCreatorCode
	case 1:
		w := words[0]
		if len(w) > 6 {
			return w[:6]
		}
		return w
	default:
		var code strings.Builder
		for _, w := range words {
			if len(w) > 3 {
				w = w[:3]
			}
			code.WriteString(w)
		}
		if code.Len() > 8 {
			return code.String()[:8]
		}
		return code.String()
	}
}

// NomenclatureInput 命名生成输入
type NomenclatureInput struct {
	AdNumber     int
	ApprovalDate time.Time
	OriginCode   string
	CreatorCode  string
	Name         string
	Theme        entity.VideoTheme
	Style        entity.VideoStyle
	Format       entity.VideoFormat
	Duration     entity.DeliverableDuration
	Size         entity.DeliverableSize
	ShowsProduct bool
	HookNumber   int
	Version      int
	IsPost       bool
}

// Generate 生成规范命名：
// AD####_AAAAMMDD_ORIGEM_CRIADOR_NOME_TEMA_ESTILO_FORMATO_TEMPO_TAMANHO[_PROD][_HK#][_V#][_POST]
func Generate(in NomenclatureInput) string {
	parts := []string{
		fmt.Sprintf("AD%04d", in.AdNumber),
		in.ApprovalDate.Format("20060102"),
		in.OriginCode,
		in.CreatorCode,
		Sanitize(in.Name),
		string(in.Theme),
		string(in.Style),
		string(in.Format),
		strings.TrimPrefix(string(in.Duration), "T"),
		strings.TrimPrefix(string(in.Size), "S"),
	}

	// 可选后缀，顺序固定
	if in.ShowsProduct {
		parts = append(parts, "PROD")
	}
	if in.HookNumber > 1 {
		parts = append(parts, fmt.Sprintf("HK%d", in.HookNumber))
	}
	if in.Version > 1 {
		parts = append(parts, fmt.Sprintf("V%d", in.Version))
	}
	if in.IsPost {
		parts = append(parts, "POST")
	}

	return strings.Join(parts, "_")
}

// Nomenclator 命名生成服务
type Nomenclator struct {
	videoRepo       repository.VideoRepository
	projectRepo     repository.ProjectRepository
	deliverableRepo repository.DeliverableRepository
	originFallback  string
	creatorFallback string
	now             func() time.Time
}

// NewNomenclator 创建命名生成服务
func NewNomenclator(videoRepo repository.VideoRepository, projectRepo repository.ProjectRepository, deliverableRepo repository.DeliverableRepository) *Nomenclator {
	return &Nomenclator{
		videoRepo:       videoRepo,
		projectRepo:     projectRepo,
		deliverableRepo: deliverableRepo,
		originFallback:  FallbackOriginCode,
		creatorFallback: FallbackCreatorCode,
		now:             time.Now,
	}
}

// SetFallbackCodes 覆盖缺省的来源/创作者兜底代号
func (n *Nomenclator) SetFallbackCodes(originCode, creatorCode string) {
	if originCode != "" {
		n.originFallback = Sanitize(originCode)
	}
	if creatorCode != "" {
		n.creatorFallback = Sanitize(creatorCode)
	}
}

// RegenerateForVideo 为视频的全部已编号素材重新计算生成命名
// 只覆盖 generatedName，人工编辑命名不受影响；输入不变时幂等
func (n *Nomenclator) RegenerateForVideo(ctx context.Context, videoID string) error {
	video, err := n.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video == nil {
		return errors.ErrVideoNotFound
	}

	project, err := n.projectRepo.GetByID(ctx, video.ProjectID)
	if err != nil {
		return err
	}
	if project == nil {
		return errors.ErrProjectNotFound
	}

	originCode := project.OriginCode
	if originCode == "" {
		originCode = n.originFallback
	}

	creatorCode := n.creatorFallback
	if video.CreatorID != "" {
		creatorCode = video.CreatorCode
		if creatorCode == "" {
			creatorCode = CreatorCode(video.CreatorName)
		}
	}

	deliverables, err := n.deliverableRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return err
	}

	for _, d := range deliverables {
		if d.AdNumber == nil {
			continue
		}

		// 日期取编号时刻，重生成不改变日期段
		numberedAt := n.now()
		if d.NumberedAt != nil {
			numberedAt = *d.NumberedAt
		}

		name := Generate(NomenclatureInput{
			AdNumber:     *d.AdNumber,
			ApprovalDate: numberedAt,
			OriginCode:   originCode,
			CreatorCode:  creatorCode,
			Name:         video.DescriptiveName,
			Theme:        video.Theme,
			Style:        video.Style,
			Format:       video.Format,
			Duration:     d.Duration,
			Size:         d.Size,
			ShowsProduct: d.ShowsProduct,
			HookNumber:   d.HookNumber,
			Version:      d.VersionNumber,
			IsPost:       d.IsPost,
		})

		if err := n.deliverableRepo.SetGeneratedName(ctx, d.ID, name); err != nil {
			return err
		}
	}

	return nil
}
