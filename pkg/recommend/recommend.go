// Package recommend 把诊断标签映射为治疗建议。
// 固定对照表，按优先级做子串匹配，先命中先返回。
package recommend

import (
	"strings"
)

// Recommendation 治疗建议
type Recommendation struct {
	Treatment     string `json:"treatment"`
	ReferenceLink string `json:"reference_link"`
	ProductHint   string `json:"product_hint"`
}

// rule 匹配规则: 标签包含pattern(不区分大小写)即命中
type rule struct {
	pattern string
	rec     Recommendation
}

// rules 按优先级排列，先命中先返回
var rules = []rule{
	{"basal cell", Recommendation{
		Treatment:     "Electrodesiccation and curettage (EDC)",
		ReferenceLink: "https://www.aad.org/public/diseases/skin-cancer/types/common/bcc",
		ProductHint:   "SPF 50+ broad-spectrum sunscreen",
	}},
	{"actinic", Recommendation{
		Treatment:     "Liquid Nitrogen Cryosurgery",
		ReferenceLink: "https://dermnetnz.org/topics/actinic-keratosis",
		ProductHint:   "Fluorouracil 5% cream",
	}},
	{"keratosis", Recommendation{
		Treatment:     "Phototherapy",
		ReferenceLink: "https://dermnetnz.org/topics/seborrhoeic-keratosis",
		ProductHint:   "Ammonium lactate 12% lotion",
	}},
	{"dermatofibroma", Recommendation{
		Treatment:     "Surgical shaving of top",
		ReferenceLink: "https://dermnetnz.org/topics/dermatofibroma",
		ProductHint:   "Silicone scar gel",
	}},
	{"nevi", Recommendation{
		Treatment:     "Surgical removal for cosmetic consideration",
		ReferenceLink: "https://dermnetnz.org/topics/melanocytic-naevus",
		ProductHint:   "UV-protective clothing",
	}},
	{"melanoma", Recommendation{
		Treatment:     "Surgery",
		ReferenceLink: "https://www.cancer.org/cancer/types/melanoma-skin-cancer/treating/surgery.html",
		ProductHint:   "SPF 50+ broad-spectrum sunscreen",
	}},
	{"hemorrhage", Recommendation{
		Treatment:     "Electrocautery",
		ReferenceLink: "https://dermnetnz.org/topics/pyogenic-granuloma",
		ProductHint:   "Sterile non-stick dressings",
	}},
	{"pyogenic granulomas", Recommendation{
		Treatment:     "Laser therapy",
		ReferenceLink: "https://dermnetnz.org/topics/pyogenic-granuloma",
		ProductHint:   "Petrolatum wound ointment",
	}},
	{"acne", Recommendation{
		Treatment:     "Topical treatments",
		ReferenceLink: "https://www.aad.org/public/diseases/acne/diy/adult-acne-treatment",
		ProductHint:   "Benzoyl peroxide 2.5% gel",
	}},
	{"vascular tumor", Recommendation{
		Treatment:     "Surgical removal",
		ReferenceLink: "https://dermnetnz.org/topics/vascular-tumours",
		ProductHint:   "Gentle fragrance-free cleanser",
	}},
	{"vasculitis", Recommendation{
		Treatment:     "Corticosteroids",
		ReferenceLink: "https://dermnetnz.org/topics/cutaneous-vasculitis",
		ProductHint:   "Compression stockings",
	}},
	{"pigmentation disorder", Recommendation{
		Treatment:     "Topical treatments",
		ReferenceLink: "https://dermnetnz.org/topics/hyperpigmentation",
		ProductHint:   "Hydroquinone 2% cream",
	}},
	{"stds", Recommendation{
		Treatment:     "Antiviral medication",
		ReferenceLink: "https://www.cdc.gov/herpes/about/index.html",
		ProductHint:   "Acyclovir 5% cream",
	}},
}

// fallback 标签不在对照表内时的兜底建议
var fallback = Recommendation{
	Treatment:     "Cannot recommend",
	ReferenceLink: "#",
	ProductHint:   "",
}

// Resolve 根据诊断标签返回治疗建议
// 纯函数，对任意输入都有返回值
func Resolve(label string) Recommendation {
	lower := strings.ToLower(label)
	for _, r := range rules {
		if strings.Contains(lower, r.pattern) {
			return r.rec
		}
	}
	return fallback
}

// Table 返回完整对照表(用于图表页展示)
func Table() []Recommendation {
	table := make([]Recommendation, len(rules))
	for i, r := range rules {
		table[i] = r.rec
	}
	return table
}
