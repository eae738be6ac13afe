package sentiment

// English keyword lists shared by both scorer variants.
var (
	positiveWordsEN = []string{
		"good", "great", "excellent", "happy", "love", "thank", "thanks",
		"appreciate", "support", "help", "aid", "relief", "better", "improved",
		"success", "wonderful", "fantastic", "amazing",
	}

	negativeWordsEN = []string{
		"bad", "poor", "terrible", "sad", "hate", "angry", "upset", "frustrated",
		"struggle", "difficult", "problem", "issue", "lack", "missing", "needed",
		"fail", "failure", "disaster", "crisis", "emergency",
	}
)

// Extra English keywords carried only by the enhanced variant.
var (
	positiveWordsEnhancedEN = []string{
		"grateful", "effective", "working", "progress", "hope", "recover",
		"safe", "stable",
	}

	negativeWordsEnhancedEN = []string{
		"suffering", "pain", "loss", "damage", "fear", "worried", "concern",
		"risk", "danger", "critical",
	}
)

// Vietnamese keyword lists (humanitarian domain), enhanced variant only.
var (
	positiveWordsVI = []string{
		"tốt", "tuyệt vời", "xuất sắc", "tuyệt", "yêu", "cảm ơn", "cám ơn",
		"biết ơn", "hỗ trợ", "giúp đỡ", "trợ giúp", "cứu", "cứu trợ",
		"cải thiện", "tốt hơn", "thành công", "phục hồi", "ổn định",
		"an toàn", "yên tâm", "tích cực", "hiệu quả", "hoạt động", "tiến bộ",
		"hy vọng", "thoát khỏi", "vượt qua", "sống sót", "bình phục", "khỏe",
	}

	negativeWordsVI = []string{
		"xấu", "tệ", "kinh khủng", "buồn", "ghét", "tức giận", "bực", "thất vọng",
		"đấu tranh", "khó khăn", "vấn đề", "lo lắng", "thiếu", "cần thiết",
		"thất bại", "tai nạn", "thảm họa", "khủng hoảng", "tình trạng khẩn cấp",
		"đau khổ", "chết", "mất", "hư hại", "sợ", "lo sợ", "rủi ro",
		"nguy hiểm", "nguy kịch", "bệnh", "ốm", "bị thương", "tổn thương",
	}
)
