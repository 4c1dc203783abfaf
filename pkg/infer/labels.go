package infer

// Label 分类结果标签
type Label = string

// verboseNames 类别索引到可读标签的固定映射，共15类
var verboseNames = [NumClasses]Label{
	0:  "Actinic keratoses and intraepithelial carcinomae",
	1:  "Basal cell carcinoma",
	2:  "Benign keratosis-like lesions",
	3:  "Dermatofibroma",
	4:  "Melanocytic nevi",
	5:  "Pyogenic granulomas and hemorrhage",
	6:  "Melanoma",
	7:  "Hives",
	8:  "Scabies",
	9:  "Bullous Pemphigoid",
	10: "Acne/Rosacea",
	11: "Vascular Tumor",
	12: "Vasculitis",
	13: "Pigmentation Disorder",
	14: "STDs - Herpes/AIDS",
}

// Labels 返回全部类别标签，索引即类别编号
func Labels() []Label {
	labels := make([]Label, NumClasses)
	copy(labels, verboseNames[:])
	return labels
}
