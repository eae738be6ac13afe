package ingest

import "github.com/reliefwatch/relief-pulse/internal/core/domain"

// Post templates per sector, ordered from early-crisis to recovery. The
// generator walks them in proportion to how far into the seeded time span
// a post falls, so early posts skew negative and late posts positive.
var postTemplates = map[domain.Category][]string{
	domain.CategoryCash: {
		"Initial cash distribution encountered system issues. Payment processing delayed by 2 days.",
		"Many families complaining about long queues at registration centers. No clear timeline given.",
		"Cash program halted temporarily due to verification database problems. Frustrated families.",
		"Registration requirements complex and unclear. Families confused about eligibility.",
		"Thiếu điểm phát tiền mặt, người dân gặp khó khăn khi đăng ký.",
		"Good news: Cash disbursement began smoothly. Hundreds of families received support.",
		"Financial aid distribution ongoing at 8 new distribution centers this week.",
		"Community appreciates cash support. Families using assistance to buy essentials.",
		"Cảm ơn chương trình hỗ trợ tiền mặt, gia đình tôi đã mua được nhu yếu phẩm.",
		"Cash assistance proving effective. Families report improved ability to meet needs.",
		"Economic activity increasing. Local markets busier with cash-supported families.",
		"Third round of payments completed successfully. Community morale improving.",
	},
	domain.CategoryMedical: {
		"Medical crisis alert: Only 1 doctor available for 10,000 residents.",
		"Medicine shortages critical: Antibiotics, painkillers completely out of stock.",
		"Patients dying from preventable diseases due to lack of basic medicine.",
		"Medical staff exhausted: Working 18-hour shifts with minimal equipment.",
		"Bệnh viện quá tải, thiếu thuốc men trầm trọng sau bão.",
		"Mobile clinic visited 3 villages yesterday. Treated 150 patients successfully.",
		"Great news: Vaccine shipment arrived! Healthcare staff vaccinating today.",
		"Health services improving. Communities have better access to medicines.",
		"Cảm ơn đội ngũ y tế, tình hình sức khỏe đã ổn định hơn nhiều.",
		"Health metrics improving dramatically. Disease cases declining.",
		"Healthcare workers celebrated: Communities grateful for their dedication.",
		"Medical supply chain now reliable. No more critical shortages.",
	},
	domain.CategoryShelter: {
		"Urgent: Shelter crisis deepening. Winter approaching, families in danger.",
		"Makeshift camps overcrowded and unsanitary. Diseases spreading rapidly.",
		"Shelter shortage critical: 5,000 families with nowhere to sleep.",
		"Tent supplies insufficient: Only 1,000 tents for 5,000 homeless families.",
		"Nhà cửa hư hại nặng, nhiều gia đình vẫn chưa có chỗ ở an toàn.",
		"Temporary shelters constructed in 5 new locations. Good progress!",
		"Families moving into temporary housing. Grateful for the support.",
		"Construction pace accelerating. 500 shelters completed this month.",
		"Cảm ơn các tình nguyện viên, khu nhà tạm đã giúp đỡ rất nhiều gia đình.",
		"Shelter conditions improving. Repairs completed before rainy season.",
		"Permanent housing program halfway done. 2,000 houses rebuilt.",
		"Communities rebuilding. New structures stronger and safer.",
	},
	domain.CategoryFood: {
		"Food crisis: Markets destroyed. No food available in affected area.",
		"Hunger spreading fast. Children showing signs of malnutrition.",
		"Food prices skyrocketing: Normal families cannot afford meals.",
		"Rations insufficient: 1 cup rice per family per day.",
		"Thiếu lương thực trầm trọng, trẻ em bị đói sau lũ.",
		"Food distribution completed successfully today. Everyone got supplies.",
		"Food quality good. Families satisfied with supplies.",
		"Food shipments arriving regularly now. Supply chain established.",
		"Cảm ơn các đoàn cứu trợ, bữa ăn của người dân đã được cải thiện.",
		"Food security improving: Harvest season approaching.",
		"Food prices stabilizing. Families can afford meals again.",
		"Nutrition indicators improving: Children gaining weight.",
	},
	domain.CategoryTransportation: {
		"Roads destroyed: Communities completely isolated.",
		"Transport system collapsed: No vehicles available.",
		"Supply trucks cannot reach remote villages.",
		"Bridges destroyed: 5 communities cut off completely.",
		"Đường sá hư hại, xe cứu trợ gặp khó khăn khi tiếp cận vùng lũ.",
		"Fleet of vehicles assembled. Evacuation operations ready.",
		"Main road cleared: Vehicles now reaching district center.",
		"Temporary bridges built: Crossing now possible.",
		"Cảm ơn đội vận chuyển, hàng cứu trợ đã đến được các thôn xa.",
		"Transport system functioning normally. Regular schedules.",
		"Public transportation restarted: Buses running schedules.",
		"Connectivity restored: Communities no longer isolated.",
	},
}

var commentTemplates = map[domain.Category][]string{
	domain.CategoryCash: {
		"Finally getting some help! This will make a real difference.",
		"The process was quick and fair. Very grateful.",
		"When will the second round of payments happen?",
		"Many families still haven't received anything. Please hurry!",
		"The amount is too small. How are we supposed to survive?",
	},
	domain.CategoryMedical: {
		"The doctors were so caring and professional. Thank you!",
		"Treatment was excellent. Much better now!",
		"We waited hours but got good care eventually.",
		"Not enough medicine for everyone. My child still sick.",
		"Critical medicines missing! People are dying needlessly.",
	},
	domain.CategoryShelter: {
		"Shelter is safe and clean. Really helpful.",
		"The temporary housing is good quality. We feel protected.",
		"Still waiting for our shelter assignment. Hope it's soon.",
		"The shelters are starting to show problems. Roof leaks reported.",
		"Living conditions are unbearable. We need permanent solutions!",
	},
	domain.CategoryFood: {
		"Good quality food received. Families are eating well now.",
		"Great supply of fresh vegetables this time!",
		"Some items were okay but we need more variety.",
		"Food quantity is decreasing. Rations being cut.",
		"Children are malnourished. Food aid is critical!",
	},
	domain.CategoryTransportation: {
		"Transport services are reliable and well-organized!",
		"Got to the hospital quickly thanks to transport support.",
		"Waiting times are getting longer. Need more vehicles.",
		"Many people can't get transport. Some areas have no service.",
		"Transport system has failed. Supplies not reaching us!",
	},
}

var postAuthors = []string{
	"Relief_Coordinator_1", "Community_Leader", "Affected_Resident",
	"Volunteer_Team", "Health_Worker", "NGO_Manager", "Local_Official",
	"Social_Worker", "Logistics_Staff", "Field_Officer",
	"Emergency_Responder", "Aid_Worker", "Humanitarian_Staff",
}

var commentAuthors = []string{
	"User_A", "User_B", "User_C", "Resident_X", "Community_Member", "Local_Voice",
}
