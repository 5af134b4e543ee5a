package vqa

// Prompt is the instruction sent with every image. The wording, examples and output format
// are fixed so that new records match the distribution of existing datasets.
const Prompt = `Please generate 5 question– short answer pairs in Vietnamese about the image, following exactly these difficulty levels:

Level 1 (Very Easy): Ask about a basic attribute such as color or shape.
Example Q: "Lá cờ trong hình có màu gì?"
Example A: "Đỏ"

Level 2 (Easy): Ask about counting visible objects.
Example Q: "Trong hình có bao nhiêu đèn lồng?"
Example A: "Năm"

Level 3 (Medium): Ask about naming a known object/landmark.
Example Q: "Cây cầu này tên là gì?"
Example A: "Cầu Rồng"

Level 4 (Hard): Ask about cultural or contextual meaning (event, festival, tradition).
Example Q: "Lễ hội nào đang diễn ra trong ảnh này?"
Example A: "Lễ hội Cồng chiêng Tây Nguyên"

Level 5 (Very Hard): Ask about multiple entities and their relations.
Example Q: "Hai cây cầu trong ảnh có tên gì và chúng bắc qua sông nào?"
Example A: "Cầu Trường Tiền và Cầu Nguyễn Hoàng; sông Hương"

Return the result strictly as a JSON array of 5 objects, each object having one key–value pair where the key is the question and the value is the answer.
Example format:
[
  {"question":"question1", "answer":"answer1","level":1},
  ....
]`

// PairCount is the number of question/answer pairs expected per image
const PairCount = 5
